// internal/models/product.go
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalog row. Image columns are loosely typed: Image holds a
// single URL on older rows, Images holds a JSON array or, for some imports, a
// JSON string wrapping an encoded array.
type Product struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"size:255;not null"`
	Brand          string         `json:"brand" gorm:"size:120"`
	Color          string         `json:"color" gorm:"size:60"`
	Category       string         `json:"category" gorm:"size:40;not null;index"`
	Description    string         `json:"description" gorm:"type:text"`
	Price          float64        `json:"price" gorm:"type:decimal(10,2);not null;index"`
	URL            string         `json:"url" gorm:"size:1024"`
	Image          string         `json:"image" gorm:"size:1024"`
	Images         datatypes.JSON `json:"images"`
	Occasions      datatypes.JSON `json:"occasions"`
	StyleTags      datatypes.JSON `json:"style_tags"`
	Materials      datatypes.JSON `json:"materials"`
	Fit            string         `json:"fit" gorm:"size:40"`
	Formality      int            `json:"formality" gorm:"default:0"`
	InventoryCount int            `json:"inventory_count" gorm:"default:0"`
	Status         ProductStatus  `json:"status" gorm:"type:varchar(20);default:'active';index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
