// Package permission provides handlers for managing permissions in the
// admin area.
package permission

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
)

// Path is the base path for permission management.
const Path = handler.RootPath + "admin/permissions"

// Service provides permission administration endpoints.
type Service struct {
	cfg         *config.Config
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
	permissions authz.PermissionRepo,
	resolver *authz.Resolver,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.permissions = permissions
	s.validator = validator.New()

	require := authz.Require(authz.PermissionGate(resolver, authz.PermAdminPermissions))

	app.Get(Path, require, s.List)
	app.Post(Path, require, s.Create)
	app.Post(Path+"/:id/activate", require, s.Activate)
	app.Post(Path+"/:id/deactivate", require, s.Deactivate)
}

// List returns all permissions.
func (s *Service) List(c *fiber.Ctx) error {
	permissions, err := s.permissions.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list permissions")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	return handler.OK(c, "permissions listed", permissions)
}

type createPermissionRequest struct {
	PermissionKey string `json:"permissionKey" validate:"required,max=100"`
	Kind          string `json:"kind" validate:"required,oneof=view create edit delete execute admin"`
	MenuID        uint   `json:"menuId" validate:"required"`
	Description   string `json:"description" validate:"max=255"`
}

// Create adds a custom permission attached to a menu node.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createPermissionRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	permission := &models.Permission{
		PermissionKey: req.PermissionKey,
		Kind:          models.PermissionKind(req.Kind),
		MenuID:        req.MenuID,
		Description:   req.Description,
		IsActive:      true,
	}

	if err := s.permissions.Create(c.UserContext(), permission); err != nil {
		log.Error().Err(err).Str("permission_key", req.PermissionKey).
			Msg("failed to create permission")

		return handler.Fail(c, fiber.StatusConflict, "permission key already exists")
	}

	return handler.Created(c, "permission created", permission)
}

// Activate re-enables a permission.
func (s *Service) Activate(c *fiber.Ctx) error {
	return s.setActive(c, true)
}

// Deactivate disables a permission so it stops resolving for every role that
// holds it. System permissions cannot be deactivated.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	return s.setActive(c, false)
}

func (s *Service) setActive(c *fiber.Ctx, active bool) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid permission id")
	}

	if err := s.permissions.SetActive(c.UserContext(), uint(id), active); err != nil {
		if errors.Is(err, rbac.ErrSystemPermission) {
			return handler.Fail(c, fiber.StatusForbidden, "system permissions cannot be deactivated")
		}

		return handler.Fail(c, fiber.StatusNotFound, "permission not found")
	}

	log.Info().Uint64("permission_id", id).Bool("active", active).
		Msg("permission active flag changed")

	return handler.OK(c, "permission updated", nil)
}
