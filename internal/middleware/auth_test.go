package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sellor-api/internal/middleware"
	"sellor-api/pkg/config"
	"sellor-api/pkg/jwtutil"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "middleware-test-key"

func setupProtected(t *testing.T) *echo.Echo {
	t.Helper()
	require.NoError(t, jwtutil.Initialize(&config.JWTConfig{
		SigningKey:      testSigningKey,
		ExpirationHours: 24,
	}))

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"vendor_id": c.Get("vendor_id"),
			"email":     c.Get("email"),
			"store_id":  c.Get("store_id"),
		})
	}, middleware.Protect)
	return e
}

func request(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProtectNoToken(t *testing.T) {
	e := setupProtected(t)

	rec := request(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token")

	rec = request(e, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token")
}

func TestProtectInvalidToken(t *testing.T) {
	e := setupProtected(t)

	rec := request(e, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token invalid")
}

func TestProtectExpiredToken(t *testing.T) {
	e := setupProtected(t)

	claims := jwtutil.VendorClaims{
		VendorID: 1,
		Email:    "joe@x.com",
		StoreID:  2,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	rec := request(e, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestProtectMissingClaims(t *testing.T) {
	e := setupProtected(t)

	// Signed with the right key but without vendor/store identity
	claims := jwtutil.VendorClaims{
		Email: "joe@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	incomplete, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	rec := request(e, "Bearer "+incomplete)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing data")
}

func TestProtectValidToken(t *testing.T) {
	e := setupProtected(t)

	token, err := jwtutil.GenerateToken(7, "joe@x.com", 3, "joes-tees")
	require.NoError(t, err)

	rec := request(e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"vendor_id":7`)
	assert.Contains(t, rec.Body.String(), `"store_id":3`)
	assert.Contains(t, rec.Body.String(), `"email":"joe@x.com"`)
}
