package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// Administrator owns the role and permission assignment lifecycle: creating
// roles with their permission sets, assigning and removing user roles, and
// replacing a role's permission edges.
//
// Unlike the read-only resolver, administrative mutations surface
// infrastructure failures to the caller instead of masking them; a silent
// false would hide operator error.
type Administrator struct {
	roles           RoleRepo
	permissions     PermissionRepo
	userRoles       UserRoleRepo
	rolePermissions RolePermissionRepo
}

// NewAdministrator creates a new role administrator.
func NewAdministrator(
	roles RoleRepo,
	permissions PermissionRepo,
	userRoles UserRoleRepo,
	rolePermissions RolePermissionRepo,
) *Administrator {
	return &Administrator{
		roles:           roles,
		permissions:     permissions,
		userRoles:       userRoles,
		rolePermissions: rolePermissions,
	}
}

// CreateRole creates a role bound to the given system role value together
// with one granted edge per permission key. Returns (false, nil) if a role
// for that system role already exists; unknown permission keys are an error.
func (a *Administrator) CreateRole(
	ctx context.Context,
	name string,
	systemRole models.SystemRole,
	permissionKeys []string,
	createdBy string,
) (bool, error) {
	if !systemRole.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidSystemRole, systemRole)
	}

	existing, err := a.roles.BySystemRole(ctx, systemRole)
	if err != nil && !errors.Is(err, ErrRoleNotFound) {
		return false, fmt.Errorf("failed to check existing role: %w", err)
	}

	if existing != nil {
		log.Warn().Str("system_role", string(systemRole)).
			Msg("role for system role already exists")

		return false, nil
	}

	permissionIDs := make([]uint, 0, len(permissionKeys))

	for _, key := range permissionKeys {
		permission, err := a.permissions.ByKey(ctx, key)
		if err != nil {
			return false, fmt.Errorf("failed to resolve permission %q: %w", key, err)
		}

		permissionIDs = append(permissionIDs, permission.ID)
	}

	role := &models.Role{
		Name:       name,
		SystemRole: systemRole,
		IsActive:   true,
	}

	if err := a.roles.Create(ctx, role); err != nil {
		return false, fmt.Errorf("failed to create role: %w", err)
	}

	if err := a.rolePermissions.Grant(ctx, role.ID, permissionIDs, createdBy); err != nil {
		return false, fmt.Errorf("failed to grant role permissions: %w", err)
	}

	log.Info().Str("role", name).Str("system_role", string(systemRole)).
		Int("permissions", len(permissionIDs)).Str("created_by", createdBy).
		Msg("role created")

	return true, nil
}

// AssignRoleToUser assigns the role bound to systemRole to the user. The
// assignment is a single conditional upsert: if the (user, role) row already
// exists it is reactivated in place, so the call is idempotent and safe under
// concurrent assignment of the same pair. Returns (false, nil) if no role is
// bound to systemRole.
func (a *Administrator) AssignRoleToUser(
	ctx context.Context,
	userID uint64,
	systemRole models.SystemRole,
	assignedBy string,
) (bool, error) {
	role, err := a.roles.BySystemRole(ctx, systemRole)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			log.Warn().Str("system_role", string(systemRole)).
				Msg("cannot assign unknown system role")

			return false, nil
		}

		return false, fmt.Errorf("failed to resolve role: %w", err)
	}

	assignment := &models.UserRole{
		UserID:     userID,
		RoleID:     role.ID,
		IsActive:   true,
		AssignedBy: assignedBy,
		AssignedAt: time.Now(),
	}

	if err := a.userRoles.Upsert(ctx, assignment); err != nil {
		return false, fmt.Errorf("failed to assign role: %w", err)
	}

	log.Info().Uint64("user_id", userID).Str("system_role", string(systemRole)).
		Str("assigned_by", assignedBy).Msg("role assigned to user")

	return true, nil
}

// RemoveRoleFromUser soft-deactivates the user's assignment of the role bound
// to systemRole. The row is retained for assignment history. Returns
// (false, nil) if the role or the assignment does not exist.
func (a *Administrator) RemoveRoleFromUser(
	ctx context.Context,
	userID uint64,
	systemRole models.SystemRole,
) (bool, error) {
	role, err := a.roles.BySystemRole(ctx, systemRole)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("failed to resolve role: %w", err)
	}

	if err := a.userRoles.Deactivate(ctx, userID, role.ID); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("failed to remove role: %w", err)
	}

	log.Info().Uint64("user_id", userID).Str("system_role", string(systemRole)).
		Msg("role removed from user")

	return true, nil
}

// UpdateRolePermissions replaces the role's entire permission edge set with
// one granted edge per permission key, atomically. Grant metadata is stamped
// fresh on every edge; the audit trail of previous grants lives in the logs.
func (a *Administrator) UpdateRolePermissions(
	ctx context.Context,
	roleID uint,
	permissionKeys []string,
	grantedBy string,
) error {
	role, err := a.roles.ByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to resolve role: %w", err)
	}

	permissionIDs := make([]uint, 0, len(permissionKeys))

	for _, key := range permissionKeys {
		permission, err := a.permissions.ByKey(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to resolve permission %q: %w", key, err)
		}

		permissionIDs = append(permissionIDs, permission.ID)
	}

	if err := a.rolePermissions.Replace(ctx, roleID, permissionIDs, grantedBy); err != nil {
		return fmt.Errorf("failed to replace role permissions: %w", err)
	}

	log.Info().Str("role", role.Name).Int("permissions", len(permissionIDs)).
		Str("granted_by", grantedBy).Msg("role permission set replaced")

	return nil
}
