package middleware

import (
	"errors"
	"net/http"
	"strings"

	"sellor-api/pkg/jwtutil"
	"sellor-api/pkg/logger"
	"sellor-api/prometheus"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Protect validates the bearer token from the Authorization header and
// injects the vendor identity into the request context. Pure validation:
// no database access. Every failure is terminal for the request.
func Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				log.Error("Expired JWT token", zap.Error(err))
				prometheus.RecordAuthError("expired_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, token expired"})
			}
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, token invalid"})
		}

		// Signature is fine but the token is useless without the identity
		// needed for store scoping
		if claims.VendorID == 0 || claims.StoreID == 0 {
			log.Error("Token missing vendor or store identity",
				zap.Uint("vendor_id", claims.VendorID),
				zap.Uint("store_id", claims.StoreID))
			prometheus.RecordAuthError("incomplete_claims")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, token invalid (missing data)"})
		}

		// Store vendor identity in context for downstream handlers
		c.Set("vendor_id", claims.VendorID)
		c.Set("email", claims.Email)
		c.Set("store_id", claims.StoreID)
		c.Set("subdomain", claims.Subdomain)

		// Token is valid, proceed with the request
		return next(c)
	}
}
