package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	exp := time.Now().Add(time.Hour)

	token := signToken(t, jwt.MapClaims{
		"uid":   "fb_abc123",
		"email": "alice@example.com",
		"exp":   exp.Unix(),
	})

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "fb_abc123", id.UID)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.WithinDuration(t, exp, id.ExpiresAt, time.Second)
}

func TestVerify_SubFallback(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	token := signToken(t, jwt.MapClaims{
		"sub": "provider-uid-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "provider-uid-42", id.UID)
	assert.Empty(t, id.Email)
}

func TestVerify_Expired(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	token := signToken(t, jwt.MapClaims{
		"uid": "fb_abc123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	_, err := v.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Missing(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewJWTVerifier("another-secret")

	token := signToken(t, jwt.MapClaims{
		"uid": "fb_abc123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_NoUIDClaim(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	token := signToken(t, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
