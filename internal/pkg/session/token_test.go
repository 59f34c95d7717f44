package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/config"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront Cart Test"
	cfg.Session.Secret = secret
	cfg.Session.CookieMaxAge = time.Hour
	return cfg
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	tokens := NewTokenManager(testConfig("0123456789abcdef0123456789abcdef"))

	token, err := tokens.Generate("session-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", sessionID)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	tokens := NewTokenManager(testConfig("0123456789abcdef0123456789abcdef"))

	token, err := tokens.Generate("session-123")
	require.NoError(t, err)

	_, err = tokens.Validate(token + "x")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager(testConfig("0123456789abcdef0123456789abcdef"))
	verifier := NewTokenManager(testConfig("fedcba9876543210fedcba9876543210"))

	token, err := issuer.Generate("session-123")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tokens := NewTokenManager(testConfig("0123456789abcdef0123456789abcdef"))

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Validate(input)
		assert.Error(t, err, "input %q", input)
	}
}
