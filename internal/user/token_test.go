package user

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func accessTokenClaims(userID uuid.UUID) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{"authenticated"},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestVerifyToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, accessTokenClaims(userID), testSecret)

	parsed, err := VerifyToken(context.Background(), token, testSecret)

	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token := signToken(t, accessTokenClaims(uuid.New()), "some-other-secret-that-is-long-enough")

	_, err := VerifyToken(context.Background(), token, testSecret)

	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	claims := accessTokenClaims(uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signToken(t, claims, testSecret)

	_, err := VerifyToken(context.Background(), token, testSecret)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyTokenRequiresExpiration(t *testing.T) {
	claims := accessTokenClaims(uuid.New())
	claims.ExpiresAt = nil
	token := signToken(t, claims, testSecret)

	_, err := VerifyToken(context.Background(), token, testSecret)

	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongAudience(t *testing.T) {
	claims := accessTokenClaims(uuid.New())
	claims.Audience = jwt.ClaimStrings{"service_role"}
	token := signToken(t, claims, testSecret)

	_, err := VerifyToken(context.Background(), token, testSecret)

	assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
}

func TestVerifyTokenRejectsNonUUIDSubject(t *testing.T) {
	claims := accessTokenClaims(uuid.New())
	claims.Subject = "not-a-uuid"
	token := signToken(t, claims, testSecret)

	_, err := VerifyToken(context.Background(), token, testSecret)

	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken(context.Background(), "not.a.jwt", testSecret)

	assert.Error(t, err)
}
