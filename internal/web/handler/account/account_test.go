package account

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/controller/rbac"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/navigation"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.Menu{},
		&models.RolePermission{},
		&models.UserRole{},
	)
	require.NoError(t, err, "failed to migrate models")

	return db
}

// identityMiddleware injects a fixed identity, standing in for the bearer
// token middleware.
func identityMiddleware(userID uint64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals(authz.IdentityKey, &authz.Identity{UserID: userID})
		}

		return c.Next()
	}
}

func newTestApp(t *testing.T, db *gorm.DB, userID uint64) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Webserver: config.Webserver{URL: "http://localhost", Port: 3000},
	}

	resolver := authz.NewResolver(rbac.NewUserRoleStore(db), rbac.NewPermissionStore(db))

	app := fiber.New()
	app.Use(identityMiddleware(userID))

	var service Service
	service.Init(app, cfg, db, resolver, rbac.NewMenuStore(db), rbac.NewPermissionStore(db))

	return app
}

// seedWorld creates a menu tree with permissions and one role holding a
// subset of them, assigned to user 1.
//
//	administration (admin.roles)
//	finance
//	  finance.billing (billing.view)
//	  finance.subscriptions (subscriptions.view)
func seedWorld(t *testing.T, db *gorm.DB) {
	t.Helper()

	ctx := context.Background()
	menus := rbac.NewMenuStore(db)
	permissions := rbac.NewPermissionStore(db)
	edges := rbac.NewRolePermissionStore(db)
	userRoles := rbac.NewUserRoleStore(db)

	adminMenu := &models.Menu{Name: "administration", DisplayName: "Administration", SortOrder: 2, IsActive: true}
	require.NoError(t, menus.Create(ctx, adminMenu))

	finance := &models.Menu{Name: "finance", DisplayName: "Finance", SortOrder: 1, IsActive: true}
	require.NoError(t, menus.Create(ctx, finance))

	billing := &models.Menu{
		Name: "finance.billing", DisplayName: "Billing",
		ParentMenuID: &finance.ID, SortOrder: 1, IsActive: true,
	}
	require.NoError(t, menus.Create(ctx, billing))

	subscriptions := &models.Menu{
		Name: "finance.subscriptions", DisplayName: "Subscriptions",
		ParentMenuID: &finance.ID, SortOrder: 2, IsActive: true,
	}
	require.NoError(t, menus.Create(ctx, subscriptions))

	create := func(menuID uint, key string) *models.Permission {
		permission := &models.Permission{
			MenuID: menuID, Kind: models.PermissionKindView,
			PermissionKey: key, IsActive: true,
		}
		require.NoError(t, permissions.Create(ctx, permission))

		return permission
	}

	create(adminMenu.ID, "admin.roles")
	billingView := create(billing.ID, "billing.view")
	create(subscriptions.ID, "subscriptions.view")

	role := models.Role{Name: "Finance", SystemRole: models.SystemRoleFinance, IsActive: true}
	require.NoError(t, db.Create(&role).Error)
	require.NoError(t, edges.Grant(ctx, role.ID, []uint{billingView.ID}, "seed"))

	require.NoError(t, userRoles.Upsert(ctx, &models.UserRole{
		UserID: 1, RoleID: role.ID, IsActive: true, AssignedBy: "seed",
	}))
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)

	return resp
}

func TestMenus(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)

	t.Run("pruned to the caller's permissions", func(t *testing.T) {
		app := newTestApp(t, db, 1)

		resp := get(t, app, Path+"/menus")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var envelope struct {
			Success bool               `json:"success"`
			Data    []*navigation.Node `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.True(t, envelope.Success)

		// finance survives through billing; administration and the
		// subscriptions sibling are pruned
		require.Len(t, envelope.Data, 1)
		finance := envelope.Data[0]
		assert.Equal(t, "finance", finance.Menu.Name)
		require.Len(t, finance.Children, 1)
		assert.Equal(t, "finance.billing", finance.Children[0].Menu.Name)
	})

	t.Run("no permissions yields an empty tree", func(t *testing.T) {
		app := newTestApp(t, db, 42)

		resp := get(t, app, Path+"/menus")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var envelope struct {
			Data []*navigation.Node `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Empty(t, envelope.Data)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		app := newTestApp(t, db, 0)

		resp := get(t, app, Path+"/menus")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCheckPermission(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)

	app := newTestApp(t, db, 1)

	check := func(t *testing.T, key string) (int, bool) {
		t.Helper()

		resp := get(t, app, Path+"/permissions/check?key="+key)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var envelope struct {
			Data struct {
				Allowed bool `json:"allowed"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))

		return resp.StatusCode, envelope.Data.Allowed
	}

	t.Run("held permission", func(t *testing.T) {
		status, allowed := check(t, "billing.view")
		assert.Equal(t, fiber.StatusOK, status)
		assert.True(t, allowed)
	})

	t.Run("permission not held", func(t *testing.T) {
		status, allowed := check(t, "admin.roles")
		assert.Equal(t, fiber.StatusOK, status)
		assert.False(t, allowed)
	})

	t.Run("unknown key reads as not allowed", func(t *testing.T) {
		status, allowed := check(t, "does.not.exist")
		assert.Equal(t, fiber.StatusOK, status)
		assert.False(t, allowed)
	})

	t.Run("missing key parameter", func(t *testing.T) {
		resp := get(t, app, Path+"/permissions/check")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
