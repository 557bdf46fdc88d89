package authz

import (
	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber locals key under which the authentication
// middleware stores the request's *Identity.
const IdentityKey = "identity"

// IdentityFromCtx returns the authenticated identity of the request, or nil
// if the request carried no valid token.
func IdentityFromCtx(c *fiber.Ctx) *Identity {
	id, ok := c.Locals(IdentityKey).(*Identity)
	if !ok {
		return nil
	}

	return id
}

// Require creates Fiber middleware that evaluates the given gates with
// logical AND and converts a denial into the matching HTTP status: 401 for
// unauthenticated, 402 for a missing subscription, 403 otherwise.
func Require(gates ...Gate) fiber.Handler {
	gate := All(gates...)

	return func(c *fiber.Ctx) error {
		decision := gate(c.UserContext(), IdentityFromCtx(c))
		recordDecision(decision)

		if decision.Allowed {
			return c.Next()
		}

		status := fiber.StatusForbidden

		switch decision.Reason {
		case DenyUnauthenticated:
			status = fiber.StatusUnauthorized
		case DenyPaymentRequired:
			status = fiber.StatusPaymentRequired
		case DenyForbidden:
		}

		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": decision.Message,
		})
	}
}
