package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"sellor-api/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	signingKey      []byte
	expirationHours = 24
)

// ErrMissingSigningKey is returned by Initialize when no JWT secret is
// configured. This is a server misconfiguration and must abort startup,
// never surface as a per-request error.
var ErrMissingSigningKey = errors.New("jwtutil: JWT signing key is not configured")

// VendorClaims represents the JWT claims asserting vendor and store identity
type VendorClaims struct {
	VendorID  uint   `json:"vendor_id"`
	Email     string `json:"email"`
	StoreID   uint   `json:"store_id"`
	Subdomain string `json:"subdomain,omitempty"`
	jwt.RegisteredClaims
}

// Initialize configures the signing key and token lifetime. Must be
// called once at startup before any token is issued or validated.
func Initialize(cfg *config.JWTConfig) error {
	if cfg == nil || cfg.SigningKey == "" {
		return ErrMissingSigningKey
	}
	signingKey = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expirationHours = cfg.ExpirationHours
	}
	return nil
}

// GenerateToken creates a signed JWT carrying vendor and store identity
func GenerateToken(vendorID uint, email string, storeID uint, subdomain string) (string, error) {
	if len(signingKey) == 0 {
		return "", ErrMissingSigningKey
	}

	claims := VendorClaims{
		VendorID:  vendorID,
		Email:     email,
		StoreID:   storeID,
		Subdomain: subdomain,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*VendorClaims, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	token, err := jwt.ParseWithClaims(tokenString, &VendorClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*VendorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
