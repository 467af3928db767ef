// internal/catalog/catalog.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shineline/storefront-backend/internal/models"
	"github.com/shineline/storefront-backend/internal/utils"
)

// ErrProductNotFound reports a lookup for a product the catalog no longer
// carries.
var ErrProductNotFound = errors.New("product not found")

// Reader is the read-only product lookup the cart core joins against.
// Lookups always hit the live catalog so inventory is current as of the
// read; nothing is cached.
type Reader interface {
	Product(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service is the gorm-backed catalog. The cart core only reads it; catalog
// authoring happens upstream.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

type SearchParams struct {
	utils.PaginationParams
	Gender  string
	InStock *bool
}

func (s *Service) SearchProducts(ctx context.Context, params SearchParams) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Gender != "" {
		query = query.Where("gender = ?", params.Gender)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("inventory_count > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price", "category"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}
