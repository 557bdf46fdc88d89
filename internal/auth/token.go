package auth

import (
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// DefaultTokenLifetime is the token expiry applied when the configuration
// does not set one.
const DefaultTokenLifetime = 24 * time.Hour

// Claims is the claim set embedded in issued tokens: the registered claims
// (subject, jti, issued-at, expiry, issuer, audience) plus the user's email
// and one role claim per system role held at issue time.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer encodes and validates identity and role claims in signed,
// expiring tokens. Signing is symmetric (HS256); issuer, audience and
// lifetime come from deployment configuration.
type TokenIssuer struct {
	signingKey []byte
	issuer     string
	audience   string
	lifetime   time.Duration
}

// NewTokenIssuer creates a token issuer from the token configuration.
func NewTokenIssuer(cfg config.Token) (*TokenIssuer, error) {
	if cfg.SigningKey == "" {
		return nil, ErrSigningKeyEmpty
	}

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	return &TokenIssuer{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		lifetime:   lifetime,
	}, nil
}

// Issue signs a token for the user with one role claim per system role.
// Every token carries a unique jti and an absolute expiry.
func (i *TokenIssuer) Issue(userID uint64, email string, roles []models.SystemRole) (string, error) {
	now := time.Now()

	roleClaims := make([]string, 0, len(roles))
	for _, role := range roles {
		roleClaims = append(roleClaims, string(role))
	}

	claims := Claims{
		Email: email,
		Roles: roleClaims,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// ExtractClaims verifies the token's signature, issuer, audience and expiry
// (zero clock skew) and returns its claims.
func (i *TokenIssuer) ExtractClaims(tokenString string) (*Claims, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (interface{}, error) {
			return i.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Validate reports whether the token verifies. Any failure reads as false;
// callers must treat "can't validate" as "deny".
func (i *TokenIssuer) Validate(tokenString string) bool {
	_, err := i.ExtractClaims(tokenString)

	return err == nil
}

// ExtractUserID returns the user ID from a valid token's subject claim.
// The second return value is false whenever the token does not validate.
func (i *TokenIssuer) ExtractUserID(tokenString string) (uint64, bool) {
	claims, err := i.ExtractClaims(tokenString)
	if err != nil {
		return 0, false
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}

	return userID, true
}

// SystemRoles converts the token's role claims back to system role values,
// dropping any claim that is not a known role.
func (c *Claims) SystemRoles() []models.SystemRole {
	roles := make([]models.SystemRole, 0, len(c.Roles))

	for _, claim := range c.Roles {
		role := models.SystemRole(claim)
		if role.Valid() {
			roles = append(roles, role)
		}
	}

	return roles
}

// UserID returns the subject claim parsed as a user ID.
func (c *Claims) UserID() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}
