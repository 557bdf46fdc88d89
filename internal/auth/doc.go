// Package auth provides authentication for the back office.
//
// LocalProvider authenticates email/password credentials against the local
// database with Argon2id password hashing.
//
// TokenIssuer turns an authenticated identity into a signed, expiring JWT
// carrying the user's role claims, and validates tokens presented on
// subsequent requests. Tokens are self-contained: identity and roles are
// trusted from the claims until expiry, without a database round-trip.
// Validation failures always read as "deny", never as "allow by default".
//
// Example usage:
//
//	user, err := localProvider.Authenticate(ctx, email, password)
//	token, err := issuer.Issue(user.ID, user.Email, roles)
//
//	// per request
//	claims, err := issuer.ExtractClaims(bearer)
package auth
