package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

func TestResolver_GetUserRoles(t *testing.T) {
	adminRole := models.Role{ID: 1, SystemRole: models.SystemRoleAdmin, IsActive: true}
	financeRole := models.Role{ID: 2, SystemRole: models.SystemRoleFinance, IsActive: true}
	disabledRole := models.Role{ID: 3, SystemRole: models.SystemRoleAccounts, IsActive: false}

	userRoles := newFakeUserRoleRepo()
	userRoles.assign(1, adminRole, true)
	userRoles.assign(1, financeRole, true)
	userRoles.assign(1, disabledRole, true)
	userRoles.assign(2, adminRole, false)

	resolver := NewResolver(userRoles, newFakePermissionRepo())

	t.Run("active assignments of active roles only", func(t *testing.T) {
		roles := resolver.GetUserRoles(context.Background(), 1)
		assert.ElementsMatch(t,
			[]models.SystemRole{models.SystemRoleAdmin, models.SystemRoleFinance}, roles)
	})

	t.Run("inactive assignment does not resolve", func(t *testing.T) {
		assert.Empty(t, resolver.GetUserRoles(context.Background(), 2))
	})

	t.Run("unknown user resolves to empty", func(t *testing.T) {
		assert.Empty(t, resolver.GetUserRoles(context.Background(), 99))
	})

	t.Run("store error fails closed", func(t *testing.T) {
		userRoles.fail = true
		defer func() { userRoles.fail = false }()

		assert.Empty(t, resolver.GetUserRoles(context.Background(), 1))
	})
}

func TestResolver_GetUserPermissions(t *testing.T) {
	view := &models.Permission{ID: 1, PermissionKey: "students.view", IsActive: true}
	edit := &models.Permission{ID: 2, PermissionKey: "students.edit", IsActive: true}

	permissions := newFakePermissionRepo(view, edit)
	permissions.grant(1, "students.view", "students.edit")

	resolver := NewResolver(newFakeUserRoleRepo(), permissions)

	t.Run("effective set", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"students.view", "students.edit"},
			resolver.GetUserPermissionKeys(context.Background(), 1))
	})

	t.Run("user without grants", func(t *testing.T) {
		assert.Empty(t, resolver.GetUserPermissions(context.Background(), 2))
	})

	t.Run("store error fails closed", func(t *testing.T) {
		permissions.fail = true
		defer func() { permissions.fail = false }()

		assert.Empty(t, resolver.GetUserPermissions(context.Background(), 1))
	})
}

func TestResolver_HasPermission(t *testing.T) {
	view := &models.Permission{ID: 1, PermissionKey: "students.view", IsActive: true}
	edit := &models.Permission{ID: 2, PermissionKey: "students.edit", IsActive: true}

	permissions := newFakePermissionRepo(view, edit)
	permissions.grant(1, "students.view")

	resolver := NewResolver(newFakeUserRoleRepo(), permissions)

	assert.True(t, resolver.HasPermission(context.Background(), 1, "students.view"))
	assert.False(t, resolver.HasPermission(context.Background(), 1, "students.edit"))
	assert.False(t, resolver.HasPermission(context.Background(), 1, "does.not.exist"))
	assert.False(t, resolver.HasPermission(context.Background(), 2, "students.view"))
}

func TestResolver_HasAnyPermission(t *testing.T) {
	view := &models.Permission{ID: 1, PermissionKey: "students.view", IsActive: true}

	permissions := newFakePermissionRepo(view)
	permissions.grant(1, "students.view")

	resolver := NewResolver(newFakeUserRoleRepo(), permissions)

	assert.True(t, resolver.HasAnyPermission(context.Background(), 1,
		[]string{"students.edit", "students.view"}))
	assert.False(t, resolver.HasAnyPermission(context.Background(), 1,
		[]string{"students.edit"}))
	assert.False(t, resolver.HasAnyPermission(context.Background(), 1, nil))
}

func TestResolver_HasRole(t *testing.T) {
	adminRole := models.Role{ID: 1, SystemRole: models.SystemRoleAdmin, IsActive: true}

	userRoles := newFakeUserRoleRepo()
	userRoles.assign(1, adminRole, true)

	resolver := NewResolver(userRoles, newFakePermissionRepo())

	assert.True(t, resolver.HasRole(context.Background(), 1, models.SystemRoleAdmin))
	assert.True(t, resolver.HasRole(context.Background(), 1,
		models.SystemRoleFinance, models.SystemRoleAdmin))
	assert.False(t, resolver.HasRole(context.Background(), 1, models.SystemRoleFinance))
	assert.False(t, resolver.HasRole(context.Background(), 1))

	// super admin holds no implicit shortcut over other roles
	assert.False(t, resolver.HasRole(context.Background(), 1, models.SystemRoleSuperAdmin))
}
