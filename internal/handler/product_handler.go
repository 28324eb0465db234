package handler

import (
	"net/http"
	"time"

	"sellor-api/internal/model"
	"sellor-api/pkg/database"
	"sellor-api/pkg/logger"
	"sellor-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	SKU               string   `json:"sku"`
	InventoryQuantity int      `json:"inventory_quantity"`
	Category          string   `json:"category"`
	Status            string   `json:"status"`
	ImageURL          string   `json:"image_url"`
	Tags              []string `json:"tags"`
}

// validate reports the first failing field as a user-facing message, or
// "" when the request is acceptable.
func (r *ProductRequest) validate() string {
	if r.Title == "" {
		return "Title is required."
	}
	if r.Price <= 0 {
		return "Price must be a positive number."
	}
	if r.InventoryQuantity < 0 {
		return "Inventory quantity cannot be negative."
	}
	if !model.ValidCategory(r.Category) {
		return "Unknown product category."
	}
	if r.Status != "" && r.Status != model.ProductStatusDraft && r.Status != model.ProductStatusPublished {
		return "Status must be either 'draft' or 'published'."
	}
	return ""
}

// storeIDFromContext returns the authenticated store identity set by the
// Protect middleware. Every product query must be scoped by it.
func storeIDFromContext(c echo.Context) (uint, bool) {
	storeID, ok := c.Get("store_id").(uint)
	return storeID, ok && storeID != 0
}

// CreateProduct handles creating a new product in the caller's store
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	storeID, ok := storeIDFromContext(c)
	if !ok {
		log.Error("Failed to get store ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized."})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid product request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed",
			zap.String("title", req.Title),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	status := req.Status
	if status == "" {
		status = model.ProductStatusDraft
	}

	product := model.Product{
		StoreID:           storeID,
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		SKU:               req.SKU,
		InventoryQuantity: req.InventoryQuantity,
		Category:          req.Category,
		Status:            status,
		ImageURL:          req.ImageURL,
		Tags:              req.Tags,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&product); result.Error != nil {
		log.Error("Failed to create product",
			zap.String("title", req.Title),
			zap.Uint("store_id", storeID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create product."})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("store_id", storeID),
		zap.String("title", product.Title))
	return c.JSON(http.StatusCreated, product)
}

// ListProducts handles retrieving all products of the caller's store,
// newest first
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("list")

	storeID, ok := storeIDFromContext(c)
	if !ok {
		log.Error("Failed to get store ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized."})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var products []model.Product
	result := database.GetDB().
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products",
			zap.Uint("store_id", storeID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products."})
	}

	log.Info("Products retrieved",
		zap.Uint("store_id", storeID),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID. Rows of other
// stores answer 404, never 403, so their existence is not leaked.
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("get")

	storeID, ok := storeIDFromContext(c)
	if !ok {
		log.Error("Failed to get store ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized."})
	}

	id := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var product model.Product
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, storeID).
		First(&product)
	if result.Error != nil {
		log.Warn("Product not found",
			zap.String("product_id", id),
			zap.Uint("store_id", storeID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found."})
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles updating an existing product of the caller's store
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	storeID, ok := storeIDFromContext(c)
	if !ok {
		log.Error("Failed to get store ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized."})
	}

	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid product request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed",
			zap.String("product_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	// Find existing product scoped to the caller's store
	var product model.Product
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, storeID).
		First(&product)
	if result.Error != nil {
		log.Warn("Product not found for update",
			zap.String("product_id", id),
			zap.Uint("store_id", storeID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found."})
	}

	// Update fields
	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.SKU = req.SKU
	product.InventoryQuantity = req.InventoryQuantity
	product.Category = req.Category
	if req.Status != "" {
		product.Status = req.Status
	}
	product.ImageURL = req.ImageURL
	product.Tags = req.Tags

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&product); result.Error != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update product."})
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.Uint("store_id", storeID),
		zap.String("title", product.Title))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete) of the caller's store
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	storeID, ok := storeIDFromContext(c)
	if !ok {
		log.Error("Failed to get store ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized."})
	}

	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&model.Product{})
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete product."})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion",
			zap.String("product_id", id),
			zap.Uint("store_id", storeID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found."})
	}

	log.Info("Product deleted",
		zap.String("product_id", id),
		zap.Uint("store_id", storeID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully."})
}
