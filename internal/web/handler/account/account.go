// Package account provides the query surface for the calling user: the
// permission-filtered menu tree and single permission checks.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/handler"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/navigation"
)

// Path is the base path for the calling user's account queries.
const Path = handler.RootPath + "me"

// Service answers "what may I see and do" for the authenticated caller.
type Service struct {
	cfg         *config.Config
	resolver    *authz.Resolver
	menus       authz.MenuRepo
	permissions authz.PermissionRepo
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	resolver *authz.Resolver,
	menus authz.MenuRepo,
	permissions authz.PermissionRepo,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.resolver = resolver
	s.menus = menus
	s.permissions = permissions

	app.Get(Path+"/menus", authz.Require(authz.Authenticated()), s.Menus)
	app.Get(Path+"/permissions/check", authz.Require(authz.Authenticated()), s.CheckPermission)
}

// Menus returns the menu tree pruned to the caller's effective permission
// set. A menu appears iff the caller holds one of its permissions directly or
// one of its descendants survives.
func (s *Service) Menus(c *fiber.Ctx) error {
	id := authz.IdentityFromCtx(c)

	menus, err := s.menus.ListActive(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load menus")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	allPermissions, err := s.permissions.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load permissions")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	active := make([]models.Permission, 0, len(allPermissions))
	for _, permission := range allPermissions {
		if permission.IsActive {
			active = append(active, permission)
		}
	}

	tree := navigation.BuildTree(menus, active)
	granted := s.resolver.GetUserPermissionKeys(c.UserContext(), id.UserID)

	return handler.OK(c, "menus resolved", navigation.FilterByPermissions(tree, granted))
}

type checkResponse struct {
	PermissionKey string `json:"permissionKey"`
	Allowed       bool   `json:"allowed"`
}

// CheckPermission reports whether the caller holds the permission named by
// the key query parameter. Unknown keys read as not allowed.
func (s *Service) CheckPermission(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "missing key parameter")
	}

	id := authz.IdentityFromCtx(c)

	return handler.OK(c, "permission checked", checkResponse{
		PermissionKey: key,
		Allowed:       s.resolver.HasPermission(c.UserContext(), id.UserID, key),
	})
}
