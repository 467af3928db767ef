// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

// Product is the read-only catalog record the cart core joins against.
// Sizes is empty for size-less products (necklaces, bracelets).
type Product struct {
	BaseModel
	Name           string         `json:"name" gorm:"size:255;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Category       string         `json:"category" gorm:"size:100;index"`
	Gender         Gender         `json:"gender" gorm:"type:varchar(20);default:'unisex'"`
	Material       string         `json:"material" gorm:"size:100"`
	Price          float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Image          string         `json:"image" gorm:"size:512"`
	InventoryCount int            `json:"inventory_count" gorm:"not null;default:0"`
	Sizes          pq.StringArray `json:"sizes,omitempty" gorm:"type:text[]"`
}

// HasSize reports whether the label is one of the product's sizes.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
