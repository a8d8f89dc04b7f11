package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praceando/event-platform/internal/domain"
)

const testSecret = "unit-test-signing-secret"

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 24*60)

	token, expiresAt, err := tm.GenerateToken("camis.linda@example.com", domain.RoleConsumer)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "camis.linda@example.com", claims.Subject)
	assert.Equal(t, domain.RoleConsumer, claims.Role)
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	signed := signTestToken(t, []byte(testSecret), jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":       "camis.linda@example.com",
		"user_role": string(domain.RoleConsumer),
		"iat":       time.Now().Add(-25 * time.Hour).Unix(),
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})

	_, err := tm.ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenTampered(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, _, err := tm.GenerateToken("user@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	// flip one character in the signature segment
	sigStart := strings.LastIndexByte(token, '.') + 1
	flipped := byte('A')
	if token[sigStart] == 'A' {
		flipped = 'B'
	}
	tampered := token[:sigStart] + string(flipped) + token[sigStart+1:]
	require.NotEqual(t, token, tampered)

	_, err = tm.ParseToken(tampered)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestParseTokenWrongKey(t *testing.T) {
	issuer := NewTokenManager("some-other-secret", 60)
	verifier := NewTokenManager(testSecret, 60)

	token, _, err := issuer.GenerateToken("user@example.com", domain.RoleConsumer)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestParseTokenWrongMethod(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	signed := signTestToken(t, []byte(testSecret), jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := tm.ParseToken(signed)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.ParseToken(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}

func TestParseTokenMissingSubject(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	signed := signTestToken(t, []byte(testSecret), jwt.SigningMethodHS512, jwt.MapClaims{
		"user_role": string(domain.RoleConsumer),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	_, err := tm.ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func signTestToken(t *testing.T, secret []byte, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}
