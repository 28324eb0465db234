package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sellor-api/internal/handler"
	"sellor-api/internal/middleware"
	"sellor-api/pkg/aigen"
	"sellor-api/pkg/config"
	"sellor-api/pkg/database"
	"sellor-api/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupApp wires an Echo app backed by a fresh in-memory SQLite database
// with the same route layout as cmd/main.go.
func setupApp(t *testing.T) *echo.Echo {
	t.Helper()

	// A uniquely named shared-cache database keeps every pooled
	// connection on the same in-memory store while isolating tests
	// from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, database.Migrate(db))
	database.SetDB(db)

	require.NoError(t, jwtutil.Initialize(&config.JWTConfig{
		SigningKey:      "handler-test-key",
		ExpirationHours: 24,
	}))

	mockGen := aigen.NewMockGenerator(nil)
	mockGen.Delay = 0
	handler.InitAIHandler(mockGen, 5*1024*1024)

	e := echo.New()

	auth := e.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	api := e.Group("/api")
	api.Use(middleware.Protect)

	products := api.Group("/products")
	products.POST("", handler.CreateProduct)
	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)

	vendors := api.Group("/vendors")
	vendors.GET("/:vendorId/store", handler.GetVendorStore)

	ai := api.Group("/ai")
	ai.POST("/generate-product-details-from-image", handler.GenerateProductDetails)

	return e
}

// doJSON performs a JSON request against the app, optionally with a
// bearer token.
func doJSON(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// registerVendor registers a vendor and returns the issued token plus
// the decoded response body.
func registerVendor(t *testing.T, e *echo.Echo, storeName, email, password string) (string, map[string]interface{}) {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"storeName": storeName,
		"email":     email,
		"password":  password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "registration failed: %s", rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token, resp
}
