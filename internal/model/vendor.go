package model

import (
	"time"

	"gorm.io/gorm"
)

// Vendor represents the vendor account stored in the database.
// A vendor owns exactly one store and is always created together with it.
type Vendor struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"type:varchar(255);not null"`
	StoreID      uint           `json:"store_id" gorm:"index;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Store Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}
