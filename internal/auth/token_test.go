package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

func testTokenConfig() config.Token {
	return config.Token{
		SigningKey: "test-signing-key",
		Issuer:     "go-edu-admin",
		Audience:   "go-edu-admin-api",
	}
}

func TestNewTokenIssuer(t *testing.T) {
	t.Run("empty signing key", func(t *testing.T) {
		_, err := NewTokenIssuer(config.Token{})
		require.ErrorIs(t, err, ErrSigningKeyEmpty)
	})

	t.Run("default lifetime", func(t *testing.T) {
		issuer, err := NewTokenIssuer(testTokenConfig())
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenLifetime, issuer.lifetime)
	})

	t.Run("configured lifetime", func(t *testing.T) {
		cfg := testTokenConfig()
		cfg.Lifetime = time.Hour

		issuer, err := NewTokenIssuer(cfg)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, issuer.lifetime)
	})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testTokenConfig())
	require.NoError(t, err)

	roles := []models.SystemRole{models.SystemRoleAdmin, models.SystemRoleFinance}

	token, err := issuer.Issue(42, "admin@example.com", roles)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ExtractClaims(token)
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "go-edu-admin", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, roles, claims.SystemRoles())

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)

	assert.True(t, issuer.Validate(token))

	extractedID, ok := issuer.ExtractUserID(token)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), extractedID)
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	issuer, err := NewTokenIssuer(testTokenConfig())
	require.NoError(t, err)

	first, err := issuer.Issue(1, "a@example.com", nil)
	require.NoError(t, err)

	second, err := issuer.Issue(1, "a@example.com", nil)
	require.NoError(t, err)

	firstClaims, err := issuer.ExtractClaims(first)
	require.NoError(t, err)

	secondClaims, err := issuer.ExtractClaims(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestTokenIssuer_RejectsWrongKey(t *testing.T) {
	issuer, err := NewTokenIssuer(testTokenConfig())
	require.NoError(t, err)

	otherCfg := testTokenConfig()
	otherCfg.SigningKey = "another-signing-key"

	other, err := NewTokenIssuer(otherCfg)
	require.NoError(t, err)

	token, err := issuer.Issue(1, "a@example.com", nil)
	require.NoError(t, err)

	_, err = other.ExtractClaims(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, other.Validate(token))

	_, ok := other.ExtractUserID(token)
	assert.False(t, ok)
}

func TestTokenIssuer_RejectsWrongIssuerAndAudience(t *testing.T) {
	issuer, err := NewTokenIssuer(testTokenConfig())
	require.NoError(t, err)

	token, err := issuer.Issue(1, "a@example.com", nil)
	require.NoError(t, err)

	wrongIssuerCfg := testTokenConfig()
	wrongIssuerCfg.Issuer = "someone-else"

	wrongIssuer, err := NewTokenIssuer(wrongIssuerCfg)
	require.NoError(t, err)
	assert.False(t, wrongIssuer.Validate(token))

	wrongAudienceCfg := testTokenConfig()
	wrongAudienceCfg.Audience = "another-api"

	wrongAudience, err := NewTokenIssuer(wrongAudienceCfg)
	require.NoError(t, err)
	assert.False(t, wrongAudience.Validate(token))
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer(testTokenConfig())
	require.NoError(t, err)

	// issue a token that is already expired
	issuer.lifetime = -time.Minute

	token, err := issuer.Issue(1, "a@example.com", nil)
	require.NoError(t, err)

	_, err = issuer.ExtractClaims(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer(testTokenConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		assert.False(t, issuer.Validate(token))
	}
}

func TestClaims_SystemRolesDropsUnknownValues(t *testing.T) {
	claims := Claims{
		Roles: []string{"admin", "made_up_role", "finance"},
	}

	assert.Equal(t,
		[]models.SystemRole{models.SystemRoleAdmin, models.SystemRoleFinance},
		claims.SystemRoles(),
	)
}
