package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"sellor-api/internal/model"
	"sellor-api/pkg/database"
	"sellor-api/pkg/jwtutil"
	"sellor-api/pkg/logger"
	"sellor-api/pkg/subdomain"
	"sellor-api/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Basic local@domain.tld shape check. Anything stricter belongs in a
// confirmation email flow, not here.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const minPasswordLength = 6

// Register handles vendor registration: it creates the store and its
// owning vendor in a single transaction and returns a session token.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	// Parse request
	var req struct {
		StoreName string `json:"storeName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	// Validate input, first failure wins
	if req.StoreName == "" || req.Email == "" || req.Password == "" {
		log.Error("Incomplete registration data",
			zap.String("email", req.Email),
			zap.Bool("store_name_provided", req.StoreName != ""),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store name, email, and password are required."})
	}

	if len(req.Password) < minPasswordLength {
		prometheus.RecordAuthError("weak_password")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Password must be at least 6 characters long."})
	}

	if !emailPattern.MatchString(req.Email) {
		prometheus.RecordAuthError("invalid_email")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid email format."})
	}

	slug := subdomain.Generate(req.StoreName)
	if slug == "" {
		log.Error("Store name produced an empty subdomain", zap.String("store_name", req.StoreName))
		prometheus.RecordAuthError("invalid_store_name")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid store name for generating a subdomain."})
	}

	// Pre-check uniqueness. The unique indexes are the final arbiter
	// under concurrent registration; these checks only produce friendly
	// errors for the common case.
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingVendor model.Vendor
	if result := database.GetDB().Where("email = ?", req.Email).First(&existingVendor); result.Error == nil {
		log.Error("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"message": "Email already exists."})
	}

	var existingStore model.Store
	if result := database.GetDB().Where("subdomain = ?", slug).First(&existingStore); result.Error == nil {
		// Subdomain taken: retry once with a short random suffix and
		// proceed with it if free. Only a double collision is rejected.
		suffixed := fmt.Sprintf("%s-%s", slug, uuid.New().String()[:4])
		var conflicting model.Store
		if result := database.GetDB().Where("subdomain = ?", suffixed).First(&conflicting); result.Error == nil {
			log.Error("Subdomain collision even with suffix",
				zap.String("subdomain", slug),
				zap.String("suffixed", suffixed))
			prometheus.RecordAuthError("subdomain_conflict")
			return c.JSON(http.StatusConflict, echo.Map{"message": "Store name results in a conflicting subdomain. Please try a different store name."})
		}
		log.Info("Subdomain taken, using suffixed variant",
			zap.String("subdomain", slug),
			zap.String("suffixed", suffixed))
		slug = suffixed
	}

	// Hash the password. bcrypt salts per call; the cost keeps offline
	// guessing expensive, which is why registration is the slowest
	// endpoint in the API.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error during registration."})
	}

	// Create store and vendor atomically: either both rows exist after
	// this block or neither does.
	defer prometheus.TrackDBOperation("transaction")(time.Now())
	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		prometheus.RecordAuthError("database_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed during transaction."})
	}

	store := model.Store{
		StoreName:    req.StoreName,
		Subdomain:    slug,
		ContactEmail: req.Email,
	}

	if result := tx.Create(&store); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create store", zap.Error(result.Error))
		prometheus.RecordAuthError("store_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed during transaction."})
	}

	vendor := model.Vendor{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		StoreID:      store.ID,
	}

	if result := tx.Create(&vendor); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create vendor", zap.Error(result.Error))
		prometheus.RecordAuthError("vendor_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed during transaction."})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit registration transaction", zap.Error(err))
		prometheus.RecordAuthError("transaction_commit_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed during transaction."})
	}

	// Issue session token
	token, err := jwtutil.GenerateToken(vendor.ID, vendor.Email, store.ID, store.Subdomain)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error during registration."})
	}
	prometheus.IncreaseActiveTokens()

	log.Info("Vendor registered",
		zap.String("email", vendor.Email),
		zap.Uint("vendor_id", vendor.ID),
		zap.Uint("store_id", store.ID),
		zap.String("subdomain", store.Subdomain))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Vendor registered successfully!",
		"token":   token,
		"vendor": map[string]interface{}{
			"id":    vendor.ID,
			"email": vendor.Email,
		},
		"store": map[string]interface{}{
			"id":        store.ID,
			"name":      store.StoreName,
			"subdomain": store.Subdomain,
		},
	})
}

// Login authenticates a vendor and returns a fresh session token
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required."})
	}

	// Find vendor in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var vendor model.Vendor
	result := database.GetDB().Where("email = ?", req.Email).First(&vendor)
	if result.Error != nil {
		// Do not reveal whether the email exists
		log.Error("Vendor not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("vendor_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials."})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials."})
	}

	// Load the vendor's store for the token claims
	var store model.Store
	if result := database.GetDB().First(&store, vendor.StoreID); result.Error != nil {
		log.Error("Store missing for vendor",
			zap.Uint("vendor_id", vendor.ID),
			zap.Uint("store_id", vendor.StoreID),
			zap.Error(result.Error))
		prometheus.RecordAuthError("store_not_found")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error during login."})
	}

	token, err := jwtutil.GenerateToken(vendor.ID, vendor.Email, store.ID, store.Subdomain)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error during login."})
	}
	prometheus.IncreaseActiveTokens()

	log.Info("Vendor logged in",
		zap.String("email", vendor.Email),
		zap.Uint("vendor_id", vendor.ID),
		zap.Uint("store_id", store.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"vendor": map[string]interface{}{
			"id":    vendor.ID,
			"email": vendor.Email,
		},
		"store": map[string]interface{}{
			"id":        store.ID,
			"name":      store.StoreName,
			"subdomain": store.Subdomain,
		},
	})
}
