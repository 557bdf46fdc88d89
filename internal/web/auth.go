package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoEduAdmin/GoEduAdmin/internal/auth"
	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
)

const bearerPrefix = "Bearer "

// AuthMiddleware is a Fiber middleware that extracts and validates the bearer
// token and stores the resolved identity in the request locals. Requests
// without a valid token continue unauthenticated; the authorization gates on
// each route decide what that means.
func AuthMiddleware(issuer *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return c.Next()
		}

		claims, err := issuer.ExtractClaims(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			log.Debug().Err(err).Msg("rejected bearer token")
			return c.Next()
		}

		userID, err := claims.UserID()
		if err != nil {
			log.Debug().Err(err).Str("subject", claims.Subject).
				Msg("token subject is not a user id")

			return c.Next()
		}

		c.Locals(authz.IdentityKey, &authz.Identity{
			UserID: userID,
			Email:  claims.Email,
			Roles:  claims.SystemRoles(),
		})

		return c.Next()
	}
}
