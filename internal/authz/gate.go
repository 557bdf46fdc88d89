package authz

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// DenyReason classifies why a gate denied a request. The invoking layer maps
// each reason to its own status code so a missing subscription is never
// reported as a generic permission failure.
type DenyReason string

const (
	// DenyUnauthenticated means no valid identity accompanied the request.
	DenyUnauthenticated DenyReason = "unauthenticated"
	// DenyForbidden means the identity lacks the required permission or role.
	DenyForbidden DenyReason = "forbidden"
	// DenyPaymentRequired means the identity lacks the required subscription.
	DenyPaymentRequired DenyReason = "payment_required"
)

// Decision is the outcome of evaluating a gate.
type Decision struct {
	// Allowed is true when the gate permits the request.
	Allowed bool
	// Reason classifies the denial; empty when allowed.
	Reason DenyReason
	// Message is a human-readable explanation of the denial.
	Message string
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason DenyReason, message string) Decision {
	return Decision{Reason: reason, Message: message}
}

// Identity is the authenticated actor extracted from a validated token.
// A nil *Identity means the request is unauthenticated.
type Identity struct {
	// UserID is the authenticated user's ID (the token subject).
	UserID uint64
	// Email is the authenticated user's email address.
	Email string
	// Roles holds the role claims embedded in the token at issue time.
	Roles []models.SystemRole
}

// Gate is a single composable allow/deny predicate. Gates attach to protected
// operations declaratively and are combined with All; each evaluates
// independently of the transport that invokes it.
type Gate func(ctx context.Context, id *Identity) Decision

// All combines gates with logical AND: the first denial wins, and an empty
// gate list allows.
func All(gates ...Gate) Gate {
	return func(ctx context.Context, id *Identity) Decision {
		for _, gate := range gates {
			if decision := gate(ctx, id); !decision.Allowed {
				return decision
			}
		}

		return Allow()
	}
}

// Authenticated allows any request carrying a valid identity.
func Authenticated() Gate {
	return func(_ context.Context, id *Identity) Decision {
		if id == nil {
			return Deny(DenyUnauthenticated, "authentication required")
		}

		return Allow()
	}
}

// PermissionGate allows requests whose identity holds the permission
// identified by key in its effective permission set.
func PermissionGate(resolver *Resolver, key string) Gate {
	return func(ctx context.Context, id *Identity) Decision {
		if id == nil {
			return Deny(DenyUnauthenticated, "authentication required")
		}

		if !resolver.HasPermission(ctx, id.UserID, key) {
			log.Warn().Uint64("user_id", id.UserID).Str("permission", key).
				Msg("user lacks required permission")

			return Deny(DenyForbidden, "missing permission: "+key)
		}

		return Allow()
	}
}

// RoleGate allows requests whose identity holds at least one of the required
// system roles. Roles are resolved from the store, not from token claims, so
// a revoked assignment takes effect before the token expires. Matching is
// direct: no role hierarchy is consulted.
func RoleGate(resolver *Resolver, required ...models.SystemRole) Gate {
	return func(ctx context.Context, id *Identity) Decision {
		if id == nil {
			return Deny(DenyUnauthenticated, "authentication required")
		}

		if !resolver.HasRole(ctx, id.UserID, required...) {
			log.Warn().Uint64("user_id", id.UserID).Msg("user lacks required role")

			return Deny(DenyForbidden, "missing required role")
		}

		return Allow()
	}
}

// SubscriptionGate allows requests whose identity has an active subscription
// satisfying the required type. Use SubscriptionAny to require any active
// subscription. Errors from the subscription service deny fail-closed with
// the payment-required reason.
func SubscriptionGate(subscriptions SubscriptionService, required SubscriptionType) Gate {
	return func(ctx context.Context, id *Identity) Decision {
		if id == nil {
			return Deny(DenyUnauthenticated, "authentication required")
		}

		current, active, err := subscriptions.ActiveSubscription(ctx, id.UserID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", id.UserID).
				Msg("failed to check subscription")

			return Deny(DenyPaymentRequired, "subscription status unavailable")
		}

		if !active || !current.Satisfies(required) {
			return Deny(DenyPaymentRequired, "active subscription required")
		}

		return Allow()
	}
}
