package authz

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// Resolver computes a user's effective role set and permission set.
//
// All query methods fail closed: an error in the underlying store is logged
// and degrades to an empty result, never to a granted permission. Callers on
// the authorization path can therefore treat the returned values as
// authoritative denials.
type Resolver struct {
	userRoles   UserRoleRepo
	permissions PermissionRepo
}

// NewResolver creates a new permission resolver.
func NewResolver(userRoles UserRoleRepo, permissions PermissionRepo) *Resolver {
	return &Resolver{
		userRoles:   userRoles,
		permissions: permissions,
	}
}

// GetUserRoles returns the system role values of the user's active role
// assignments. Store errors degrade to an empty set.
func (r *Resolver) GetUserRoles(ctx context.Context, userID uint64) []models.SystemRole {
	assignments, err := r.userRoles.ActiveByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to load user roles")
		return nil
	}

	roles := make([]models.SystemRole, 0, len(assignments))
	seen := make(map[models.SystemRole]bool, len(assignments))

	for _, assignment := range assignments {
		if !assignment.Role.IsActive {
			continue
		}

		if seen[assignment.Role.SystemRole] {
			continue
		}

		seen[assignment.Role.SystemRole] = true
		roles = append(roles, assignment.Role.SystemRole)
	}

	return roles
}

// GetUserPermissions returns the user's effective permission set: the union,
// over every active role assignment, of every active permission reachable
// through a granted role-permission edge. De-duplicated by permission ID.
// Store errors degrade to an empty set.
func (r *Resolver) GetUserPermissions(ctx context.Context, userID uint64) []models.Permission {
	permissions, err := r.permissions.ActiveGrantedByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to load user permissions")
		return nil
	}

	return permissions
}

// GetUserPermissionKeys returns the permission keys of the user's effective
// permission set.
func (r *Resolver) GetUserPermissionKeys(ctx context.Context, userID uint64) []string {
	permissions := r.GetUserPermissions(ctx, userID)

	keys := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		keys = append(keys, permission.PermissionKey)
	}

	return keys
}

// HasPermission checks whether the user's effective permission set contains
// the permission identified by key. An unknown key resolves to false.
func (r *Resolver) HasPermission(ctx context.Context, userID uint64, key string) bool {
	permission, err := r.permissions.ByKey(ctx, key)
	if err != nil {
		log.Warn().Err(err).Uint64("user_id", userID).Str("permission", key).
			Msg("permission key did not resolve")

		return false
	}

	for _, granted := range r.GetUserPermissions(ctx, userID) {
		if granted.ID == permission.ID {
			return true
		}
	}

	return false
}

// HasAnyPermission checks whether the user holds at least one of the given
// permissions.
func (r *Resolver) HasAnyPermission(ctx context.Context, userID uint64, keys []string) bool {
	if len(keys) == 0 {
		return false
	}

	granted := make(map[string]bool)
	for _, permission := range r.GetUserPermissions(ctx, userID) {
		granted[permission.PermissionKey] = true
	}

	for _, key := range keys {
		if granted[key] {
			return true
		}
	}

	return false
}

// HasRole checks whether the user holds one of the required system roles.
// Matching is direct: no role hierarchy is consulted.
func (r *Resolver) HasRole(ctx context.Context, userID uint64, required ...models.SystemRole) bool {
	if len(required) == 0 {
		return false
	}

	held := make(map[models.SystemRole]bool)
	for _, role := range r.GetUserRoles(ctx, userID) {
		held[role] = true
	}

	for _, role := range required {
		if held[role] {
			return true
		}
	}

	return false
}
