package authz

import "errors"

var (
	// ErrRoleNotFound is returned when a role cannot be found.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRoleExists is returned when attempting to create a role for a system
	// role value that already has one.
	ErrRoleExists = errors.New("role for this system role already exists")

	// ErrPermissionNotFound is returned when a permission key cannot be resolved.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrAssignmentNotFound is returned when a user-role assignment does not exist.
	ErrAssignmentNotFound = errors.New("user role assignment not found")

	// ErrInvalidSystemRole is returned when a system role value is not one of
	// the known values.
	ErrInvalidSystemRole = errors.New("invalid system role")
)
