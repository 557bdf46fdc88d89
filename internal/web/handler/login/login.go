// Package login provides the handler exchanging credentials for a signed token.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/auth"
	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/handler"
)

// Path is the login endpoint path.
const Path = handler.RootPath + "auth/login"

// Service handles credential login.
type Service struct {
	cfg       *config.Config
	provider  *auth.LocalProvider
	resolver  *authz.Resolver
	issuer    *auth.TokenIssuer
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	resolver *authz.Resolver,
	issuer *auth.TokenIssuer,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.resolver = resolver
	s.issuer = issuer
	s.validator = validator.New()

	app.Post(Path, s.Login)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string   `json:"token"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Login authenticates email/password credentials and returns a signed token
// embedding the user's resolved roles.
func (s *Service) Login(c *fiber.Ctx) error {
	var req loginRequest

	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "validation failed", err.Error())
	}

	user, err := s.provider.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) ||
			errors.Is(err, auth.ErrInvalidPassword) ||
			errors.Is(err, auth.ErrUserAccountDisabled) {
			log.Warn().Str("email", req.Email).Msg("login rejected")

			return handler.Fail(c, fiber.StatusUnauthorized, "invalid credentials")
		}

		log.Error().Err(err).Msg("login failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	roles := s.resolver.GetUserRoles(c.UserContext(), user.ID)

	token, err := s.issuer.Issue(user.ID, user.Email, roles)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to issue token")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal error")
	}

	roleClaims := make([]string, 0, len(roles))
	for _, role := range roles {
		roleClaims = append(roleClaims, string(role))
	}

	return handler.OK(c, "login successful", loginResponse{
		Token: token,
		Email: user.Email,
		Roles: roleClaims,
	})
}
