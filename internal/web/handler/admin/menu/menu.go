// Package menu provides handlers for managing the navigation menu tree in
// the admin area.
package menu

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/controller/rbac"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/handler"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/navigation"
)

// Path is the base path for menu management.
const Path = handler.RootPath + "admin/menus"

// Service provides menu administration endpoints.
type Service struct {
	cfg         *config.Config
	menus       authz.MenuRepo
	permissions authz.PermissionRepo
	validator   *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	menus authz.MenuRepo,
	permissions authz.PermissionRepo,
	resolver *authz.Resolver,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.menus = menus
	s.permissions = permissions
	s.validator = validator.New()

	require := authz.Require(authz.PermissionGate(resolver, authz.PermAdminMenus))

	app.Get(Path, require, s.Tree)
	app.Post(Path, require, s.Create)
	app.Put(Path+"/:id", require, s.Update)
	app.Post(Path+"/:id/deactivate", require, s.Deactivate)
}

// Tree returns the full active menu tree without permission pruning, for
// administrators editing the navigation structure.
func (s *Service) Tree(c *fiber.Ctx) error {
	menus, err := s.menus.ListActive(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list menus")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	permissions, err := s.permissions.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	tree := navigation.BuildTree(menus, permissions)

	return handler.OK(c, "menu tree", tree)
}

type createMenuRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	DisplayName  string `json:"displayName" validate:"required,max=100"`
	Icon         string `json:"icon" validate:"max=50"`
	Route        string `json:"route" validate:"max=255"`
	ParentMenuID *uint  `json:"parentMenuId"`
	SortOrder    int    `json:"sortOrder"`
}

// Create inserts a menu node. A parent, if given, must exist and be active.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createMenuRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	menu := &models.Menu{
		Name:         req.Name,
		DisplayName:  req.DisplayName,
		Icon:         req.Icon,
		Route:        req.Route,
		ParentMenuID: req.ParentMenuID,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}

	if err := s.menus.Create(c.UserContext(), menu); err != nil {
		if errors.Is(err, rbac.ErrMenuNotFound) {
			return handler.Fail(c, fiber.StatusBadRequest, "parent menu not found or inactive")
		}

		log.Error().Err(err).Str("menu", req.Name).Msg("failed to create menu")

		return handler.Fail(c, fiber.StatusConflict, "menu name already exists")
	}

	return handler.Created(c, "menu created", menu)
}

type updateMenuRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Icon        string `json:"icon" validate:"max=50"`
	Route       string `json:"route" validate:"max=255"`
	SortOrder   int    `json:"sortOrder"`
}

// Update changes a menu's presentation fields. Reparenting is not supported;
// restructure by creating a new node and deactivating the old one.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid menu id")
	}

	var req updateMenuRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	menu, err := s.menus.ByID(c.UserContext(), id)
	if err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "menu not found")
	}

	menu.DisplayName = req.DisplayName
	menu.Icon = req.Icon
	menu.Route = req.Route
	menu.SortOrder = req.SortOrder

	if err := s.menus.Update(c.UserContext(), menu); err != nil {
		log.Error().Err(err).Uint("menu_id", id).Msg("failed to update menu")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	return handler.OK(c, "menu updated", menu)
}

// Deactivate soft-deactivates a menu. Its subtree disappears from built
// trees since children of an inactive node are unreachable.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid menu id")
	}

	if err := s.menus.Deactivate(c.UserContext(), id); err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "menu not found")
	}

	log.Info().Uint("menu_id", id).Msg("menu deactivated")

	return handler.OK(c, "menu deactivated", nil)
}

func pathID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)

	return uint(id), err
}
