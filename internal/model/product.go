package model

import (
	"time"

	"gorm.io/gorm"
)

// Product statuses
const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
)

// Categories a product may be assigned to. Kept in sync with the
// storefront dashboard's category picker.
var ProductCategories = []string{
	"Apparel", "Accessories", "Home & Decor", "Electronics",
	"Beauty & Health", "Toys & Games", "Books", "Other",
}

// Product represents a catalog entry owned by a single store
type Product struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	StoreID           uint           `json:"store_id" gorm:"index;not null;comment:'Store this product belongs to'"`
	Title             string         `json:"title" gorm:"type:varchar(255);not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Price             float64        `json:"price" gorm:"not null"`
	SKU               string         `json:"sku" gorm:"type:varchar(100)"`
	InventoryQuantity int            `json:"inventory_quantity" gorm:"default:0"`
	Category          string         `json:"category" gorm:"type:varchar(100)"`
	Status            string         `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	ImageURL          string         `json:"image_url" gorm:"type:varchar(500)"`
	Tags              []string       `json:"tags" gorm:"serializer:json"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// ValidCategory reports whether the given category is one of the
// predefined product categories. The empty string is allowed since
// category is optional.
func ValidCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}
