package handler

import (
	"io"
	"net/http"

	"sellor-api/internal/model"
	"sellor-api/pkg/aigen"
	"sellor-api/pkg/logger"
	"sellor-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// detailGenerator is the configured AI detail generation service
var detailGenerator aigen.DetailGenerator = aigen.NewMockGenerator(model.ProductCategories)

// maxImageBytes caps uploaded product images at 5MB
var maxImageBytes int64 = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// InitAIHandler configures the detail generator and upload limit used
// by GenerateProductDetails
func InitAIHandler(generator aigen.DetailGenerator, maxBytes int64) {
	if generator != nil {
		detailGenerator = generator
	}
	if maxBytes > 0 {
		maxImageBytes = maxBytes
	}
}

// GenerateProductDetails accepts a product image upload and returns
// AI-generated title, description, tags and a suggested category
func GenerateProductDetails(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AIGenerationCounter.Inc()

	fileHeader, err := c.FormFile("productImage")
	if err != nil {
		log.Error("No image file uploaded", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No image file uploaded."})
	}

	if fileHeader.Size > maxImageBytes {
		log.Warn("Uploaded image exceeds size limit",
			zap.Int64("size", fileHeader.Size),
			zap.Int64("limit", maxImageBytes))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image size exceeds the 5MB limit."})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		log.Warn("Unsupported image type", zap.String("mime_type", mimeType))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "File upload only supports JPEG and PNG images."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded image", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to generate product details."})
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		log.Error("Failed to read uploaded image", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to generate product details."})
	}

	details, err := detailGenerator.GenerateFromImage(c.Request().Context(), imageData, mimeType)
	if err != nil {
		log.Error("AI detail generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to generate product details using AI."})
	}

	log.Info("AI product details generated",
		zap.String("mime_type", mimeType),
		zap.Int("image_bytes", len(imageData)),
		zap.String("suggested_category", details.SuggestedCategory))
	return c.JSON(http.StatusOK, details)
}
