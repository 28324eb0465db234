package model

import (
	"time"

	"gorm.io/gorm"
)

// Store represents a vendor's storefront stored in the database
// This is the tenant namespace of our multi-tenant architecture
type Store struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	StoreName    string         `json:"store_name" gorm:"type:varchar(255);not null"`
	Subdomain    string         `json:"subdomain" gorm:"type:varchar(100);uniqueIndex;not null"`
	ContactEmail string         `json:"contact_email" gorm:"type:varchar(100)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
