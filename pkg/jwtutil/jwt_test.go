package jwtutil_test

import (
	"errors"
	"testing"
	"time"

	"sellor-api/pkg/config"
	"sellor-api/pkg/jwtutil"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

func initJWT(t *testing.T) {
	t.Helper()
	err := jwtutil.Initialize(&config.JWTConfig{
		SigningKey:      testSigningKey,
		ExpirationHours: 24,
	})
	require.NoError(t, err)
}

func TestInitializeRequiresSigningKey(t *testing.T) {
	err := jwtutil.Initialize(&config.JWTConfig{SigningKey: "", ExpirationHours: 24})
	assert.ErrorIs(t, err, jwtutil.ErrMissingSigningKey)

	err = jwtutil.Initialize(nil)
	assert.ErrorIs(t, err, jwtutil.ErrMissingSigningKey)
}

func TestGenerateAndValidateToken(t *testing.T) {
	initJWT(t)

	token, err := jwtutil.GenerateToken(7, "joe@x.com", 3, "joes-tees")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.VendorID)
	assert.Equal(t, "joe@x.com", claims.Email)
	assert.Equal(t, uint(3), claims.StoreID)
	assert.Equal(t, "joes-tees", claims.Subdomain)

	// Expiry set roughly one day out
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	initJWT(t)

	token, err := jwtutil.GenerateToken(1, "a@b.co", 2, "shop")
	require.NoError(t, err)

	_, err = jwtutil.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = jwtutil.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	initJWT(t)

	claims := jwtutil.VendorClaims{
		VendorID: 1,
		Email:    "a@b.co",
		StoreID:  2,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
	require.NoError(t, err)

	_, err = jwtutil.ValidateToken(foreign)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	initJWT(t)

	// Correctly signed token whose expiry is in the past
	claims := jwtutil.VendorClaims{
		VendorID: 1,
		Email:    "a@b.co",
		StoreID:  2,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	_, err = jwtutil.ValidateToken(expired)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}
