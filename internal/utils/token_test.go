package utils

import (
	"testing"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail  = "admin@csrippers.tech"
	testAdminSecret = "top-secret"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token := GenerateAdminToken(testAdminEmail, testAdminSecret)

	payload, err := ValidateAdminToken(token, testAdminEmail, testAdminSecret)
	require.NoError(t, err)
	assert.Equal(t, testAdminEmail, payload.Email)
	assert.Equal(t, testAdminSecret, payload.Secret)
	assert.InDelta(t, time.Now().Unix(), payload.IssuedAt, 5)
}

func TestAdminTokenValidityWindow(t *testing.T) {
	nearExpiry := EncodeAdminToken(AdminTokenPayload{
		Email:    testAdminEmail,
		IssuedAt: time.Now().Add(-23*time.Hour - 59*time.Minute).Unix(),
		Secret:   testAdminSecret,
	})
	_, err := ValidateAdminToken(nearExpiry, testAdminEmail, testAdminSecret)
	assert.NoError(t, err)

	pastExpiry := EncodeAdminToken(AdminTokenPayload{
		Email:    testAdminEmail,
		IssuedAt: time.Now().Add(-24*time.Hour - time.Minute).Unix(),
		Secret:   testAdminSecret,
	})
	_, err = ValidateAdminToken(pastExpiry, testAdminEmail, testAdminSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAdminTokenIdentityMismatch(t *testing.T) {
	token := GenerateAdminToken(testAdminEmail, testAdminSecret)

	_, err := ValidateAdminToken(token, "other@csrippers.tech", testAdminSecret)
	assert.ErrorIs(t, err, ErrTokenIdentity)

	_, err = ValidateAdminToken(token, testAdminEmail, "wrong-secret")
	assert.ErrorIs(t, err, ErrTokenIdentity)
}

func TestAdminTokenMalformed(t *testing.T) {
	for _, token := range []string{"", "not base64!!", "bm90IGpzb24"} {
		_, err := ValidateAdminToken(token, testAdminEmail, testAdminSecret)
		assert.ErrorIs(t, err, ErrTokenMalformed, token)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-jwt-secret", Expiry: "24h"},
	}
	t.Cleanup(func() { config.AppConfig = nil })

	token, err := GenerateJWT("user-42", "student@csrippers.tech", "student")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "student@csrippers.tech", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestJWTFallsBackOnBadExpiry(t *testing.T) {
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-jwt-secret", Expiry: "tomorrow"},
	}
	t.Cleanup(func() { config.AppConfig = nil })

	token, err := GenerateJWT("user-42", "student@csrippers.tech", "student")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTRejectsTamperedSecret(t *testing.T) {
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-jwt-secret", Expiry: "24h"},
	}
	t.Cleanup(func() { config.AppConfig = nil })

	token, err := GenerateJWT("user-42", "student@csrippers.tech", "student")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "rotated-secret"
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
