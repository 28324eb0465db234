package handler

import (
	"net/http"
	"strconv"
	"time"

	"sellor-api/internal/model"
	"sellor-api/pkg/database"
	"sellor-api/pkg/logger"
	"sellor-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetVendorStore retrieves the store owned by a vendor. A vendor may
// only look up their own store; any other id answers 404 so foreign
// vendor ids are not confirmed to exist.
func GetVendorStore(c echo.Context) error {
	log := logger.FromContext(c)

	vendorID, ok := c.Get("vendor_id").(uint)
	if !ok {
		log.Error("Failed to get vendor ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized."})
	}

	requested, err := strconv.ParseUint(c.Param("vendorId"), 10, 32)
	if err != nil || uint(requested) != vendorID {
		log.Warn("Vendor store lookup for foreign or invalid vendor id",
			zap.String("requested", c.Param("vendorId")),
			zap.Uint("vendor_id", vendorID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Store not found."})
	}

	storeID, _ := c.Get("store_id").(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var store model.Store
	if result := database.GetDB().First(&store, storeID); result.Error != nil {
		log.Error("Store not found for vendor",
			zap.Uint("vendor_id", vendorID),
			zap.Uint("store_id", storeID),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Store not found."})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"store": map[string]interface{}{
			"id":            store.ID,
			"name":          store.StoreName,
			"subdomain":     store.Subdomain,
			"contact_email": store.ContactEmail,
			"created_at":    store.CreatedAt,
		},
	})
}
