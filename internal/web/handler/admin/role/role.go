// Package role provides handlers for managing roles, their permission sets
// and user-role assignments in the admin area.
package role

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/handler"
)

const (
	// Path is the base path for role management.
	Path = handler.RootPath + "admin/roles"

	// UserRolesPath is the base path for user-role assignment management.
	UserRolesPath = handler.RootPath + "admin/users/:id/roles"
)

// Service provides role administration endpoints.
type Service struct {
	cfg       *config.Config
	admin     *authz.Administrator
	roles     authz.RoleRepo
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	admin *authz.Administrator,
	roles authz.RoleRepo,
	resolver *authz.Resolver,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.admin = admin
	s.roles = roles
	s.validator = validator.New()

	requireRoles := authz.Require(authz.PermissionGate(resolver, authz.PermAdminRoles))
	requireUsers := authz.Require(authz.PermissionGate(resolver, authz.PermAdminUsers))

	app.Get(Path, requireRoles, s.List)
	app.Post(Path, requireRoles, s.Create)
	app.Put(Path+"/:id", requireRoles, s.Update)
	app.Post(Path+"/:id/deactivate", requireRoles, s.Deactivate)
	app.Put(Path+"/:id/permissions", requireRoles, s.ReplacePermissions)

	app.Post(UserRolesPath, requireUsers, s.AssignUserRole)
	app.Delete(UserRolesPath+"/:systemRole", requireUsers, s.RemoveUserRole)
}

// List returns all roles.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := s.roles.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	return handler.OK(c, "roles listed", roles)
}

type createRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	SystemRole  string   `json:"systemRole" validate:"required"`
	Permissions []string `json:"permissions"`
}

// Create creates a role bound to a system role value together with its
// permission set. A second role for the same system role is a conflict.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRoleRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	createdBy := actor(c)

	created, err := s.admin.CreateRole(
		c.UserContext(),
		req.Name,
		models.SystemRole(req.SystemRole),
		req.Permissions,
		createdBy,
	)
	if err != nil {
		log.Error().Err(err).Str("role", req.Name).Msg("failed to create role")

		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if !created {
		return handler.Fail(c, fiber.StatusConflict, "role for this system role already exists")
	}

	return handler.Created(c, "role created", nil)
}

type updateRoleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// Update changes a role's display name and description.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	var req updateRoleRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	role, err := s.roles.ByID(c.UserContext(), id)
	if err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "role not found")
	}

	role.Name = req.Name
	role.Description = req.Description

	if err := s.roles.Update(c.UserContext(), role); err != nil {
		log.Error().Err(err).Uint("role_id", id).Msg("failed to update role")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	return handler.OK(c, "role updated", role)
}

// Deactivate soft-deactivates a role; its permissions stop resolving for
// every holder while assignment history is retained.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	if err := s.roles.Deactivate(c.UserContext(), id); err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "role not found")
	}

	log.Info().Uint("role_id", id).Str("by", actor(c)).Msg("role deactivated")

	return handler.OK(c, "role deactivated", nil)
}

type replacePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// ReplacePermissions replaces a role's entire permission set.
func (s *Service) ReplacePermissions(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	var req replacePermissionsRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	if err := s.admin.UpdateRolePermissions(c.UserContext(), id, req.Permissions, actor(c)); err != nil {
		log.Error().Err(err).Uint("role_id", id).Msg("failed to replace role permissions")

		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	return handler.OK(c, "role permissions replaced", nil)
}

type assignRoleRequest struct {
	SystemRole string `json:"systemRole" validate:"required"`
}

// AssignUserRole assigns a system role to a user. Repeating the assignment is
// idempotent: an existing row is reactivated in place.
func (s *Service) AssignUserRole(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req assignRoleRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	assigned, err := s.admin.AssignRoleToUser(
		c.UserContext(),
		userID,
		models.SystemRole(req.SystemRole),
		actor(c),
	)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to assign role")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	if !assigned {
		return handler.Fail(c, fiber.StatusNotFound, "no role bound to this system role")
	}

	return handler.OK(c, "role assigned", nil)
}

// RemoveUserRole soft-deactivates a user's role assignment.
func (s *Service) RemoveUserRole(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	removed, err := s.admin.RemoveRoleFromUser(
		c.UserContext(),
		userID,
		models.SystemRole(c.Params("systemRole")),
	)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to remove role")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	if !removed {
		return handler.Fail(c, fiber.StatusNotFound, "assignment not found")
	}

	return handler.OK(c, "role removed", nil)
}

// actor names the administrator performing the mutation for grant metadata.
func actor(c *fiber.Ctx) string {
	if id := authz.IdentityFromCtx(c); id != nil {
		return id.Email
	}

	return ""
}

func pathID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)

	return uint(id), err
}

func pathUserID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
