// internal/services/validation_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shineline/storefront-backend/internal/cartstore"
	"github.com/shineline/storefront-backend/internal/catalog"
	"github.com/shineline/storefront-backend/internal/models"
)

// ValidationService re-checks a persisted cart against live catalog
// inventory and sizes. It is stateless and side-effect-free beyond a
// summary log line; an invalid cart is a normal report, never an error.
type ValidationService struct {
	items   cartstore.Store
	catalog catalog.Reader
}

func NewValidationService(items cartstore.Store, catalog catalog.Reader) *ValidationService {
	return &ValidationService{
		items:   items,
		catalog: catalog,
	}
}

// Validate builds a report with one result per cart entry, preserving the
// cart's order. The checks run in a fixed order and all applicable errors
// accumulate (an out-of-stock product with a requested quantity gets both
// the shortfall error and "Out of stock"). total_price sums only valid
// entries; an empty cart is valid.
func (s *ValidationService) Validate(ctx context.Context, userID uuid.UUID) (*models.CartValidationReport, error) {
	entries, err := s.items.List(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	report := &models.CartValidationReport{
		Valid: true,
		Items: make([]models.ValidationResult, 0, len(entries)),
	}

	for _, entry := range entries {
		result := models.ValidationResult{
			CartItemID:        entry.ItemID,
			ProductID:         entry.ProductID.String(),
			RequestedQuantity: entry.Quantity,
			Valid:             true,
			Errors:            []string{},
		}

		product, err := s.catalog.Product(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				result.Valid = false
				result.Errors = append(result.Errors, "Product is no longer available")
				report.Valid = false
				report.Items = append(report.Items, result)
				continue
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}

		result.ProductName = product.Name
		result.AvailableQuantity = product.InventoryCount
		result.UnitPrice = product.Price

		// Check inventory
		if entry.Quantity > product.InventoryCount {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Only %d items available (requested %d)", product.InventoryCount, entry.Quantity))
		}

		// Check if size is valid (for products with sizes)
		if len(product.Sizes) > 0 && entry.SelectedSize != "" {
			if !product.HasSize(entry.SelectedSize) {
				result.Valid = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("Selected size %q is not available", entry.SelectedSize))
			}
		}

		// Check inventory is not zero
		if product.InventoryCount == 0 {
			result.Valid = false
			result.Errors = append(result.Errors, "Out of stock")
		}

		if result.Valid {
			report.TotalPrice += product.Price * float64(entry.Quantity)
		} else {
			report.Valid = false
		}

		report.Items = append(report.Items, result)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"total_items": len(report.Items),
		"valid":       report.Valid,
		"total_price": report.TotalPrice,
	}).Info("Cart validation completed")

	return report, nil
}
