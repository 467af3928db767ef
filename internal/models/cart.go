// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a persisted account cart row. The composite unique index on
// (user_id, product_id, selected_size) is the conflict target for every
// add/merge upsert. SelectedSize is stored as '' rather than NULL so the
// index applies to size-less products too.
//
// Rows are hard-deleted: a soft-deleted row would keep occupying the
// identity key and block re-adding the same product.
type CartItem struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_identity;index"`
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_identity"`
	SelectedSize string    `json:"selected_size,omitempty" gorm:"size:50;not null;default:'';uniqueIndex:idx_cart_items_identity"`
	Quantity     int       `json:"quantity" gorm:"not null;check:quantity >= 1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// GuestCartEntry is the wire shape stored as a JSON list under the guest's
// cart key. Identity within the list is (product_id, selected_size).
type GuestCartEntry struct {
	ProductID    uuid.UUID `json:"product_id"`
	Quantity     int       `json:"quantity"`
	SelectedSize string    `json:"selected_size,omitempty"`
}

// ValidationResult is the per-entry outcome of a cart validation pass.
// Errors preserves the order the checks ran in and is never deduplicated.
type ValidationResult struct {
	CartItemID        string   `json:"cart_item_id"`
	ProductID         string   `json:"product_id"`
	ProductName       string   `json:"product_name"`
	RequestedQuantity int      `json:"requested_quantity"`
	AvailableQuantity int      `json:"available_quantity"`
	UnitPrice         float64  `json:"unit_price"`
	Valid             bool     `json:"valid"`
	Errors            []string `json:"errors"`
}

// CartValidationReport aggregates per-entry results. TotalPrice sums
// unit_price x requested_quantity over valid entries only, and Valid is the
// AND of all entry validities (true for an empty cart).
type CartValidationReport struct {
	Valid      bool               `json:"valid"`
	TotalPrice float64            `json:"total_price"`
	Items      []ValidationResult `json:"items"`
}
