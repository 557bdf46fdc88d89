// Package rbac provides the GORM-backed implementations of the authorization
// repositories: roles, permissions, menus, user-role assignments and
// role-permission edges.
package rbac

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrNameEmpty is returned when attempting to create a record with an empty name.
	ErrNameEmpty = errors.New("name cannot be empty")
)
