// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/shineline/storefront-backend/internal/models"
)

// SeedInitialData loads the storefront catalog on an empty products table.
func SeedInitialData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding catalog data...")

	products := []models.Product{
		{
			Name:           "Lumos Stainless Steel Ring",
			Price:          49.99,
			Image:          "/assets/product-ring-1.jpg",
			Category:       "Rings",
			Gender:         models.GenderUnisex,
			Description:    "A polished, scratch-resistant ring available in multiple sizes. Perfect for everyday wear or special occasions.",
			Material:       "Stainless Steel 316L",
			Sizes:          pq.StringArray{"6", "7", "8", "9", "10", "11"},
			InventoryCount: 25,
		},
		{
			Name:           "Elegance Chain Necklace",
			Price:          89.99,
			Image:          "/assets/product-necklace-1.jpg",
			Category:       "Necklaces",
			Gender:         models.GenderWomen,
			Description:    "Elegant stainless steel necklace with delicate pendant. Timeless design that complements any outfit.",
			Material:       "Stainless Steel 316L",
			InventoryCount: 18,
		},
		{
			Name:           "Modern Link Bracelet",
			Price:          64.99,
			Image:          "/assets/product-bracelet-1.jpg",
			Category:       "Bracelets",
			Gender:         models.GenderMen,
			Description:    "Contemporary bracelet with modern link design. Durable and stylish for everyday wear.",
			Material:       "Stainless Steel 316L",
			InventoryCount: 12,
		},
		{
			Name:           "Classic Hoop Earrings",
			Price:          39.99,
			Image:          "/assets/product-earrings-1.jpg",
			Category:       "Earrings",
			Gender:         models.GenderWomen,
			Description:    "Timeless hoop earrings in polished stainless steel. Lightweight and comfortable for all-day wear.",
			Material:       "Stainless Steel 316L",
			InventoryCount: 30,
		},
		{
			Name:           "Infinity Band Ring",
			Price:          54.99,
			Image:          "/assets/product-ring-1.jpg",
			Category:       "Rings",
			Gender:         models.GenderWomen,
			Description:    "Beautiful infinity design symbolizing eternal love. Sleek and comfortable fit.",
			Material:       "Stainless Steel 316L",
			Sizes:          pq.StringArray{"5", "6", "7", "8", "9"},
			InventoryCount: 20,
		},
		{
			Name:           "Statement Chain Necklace",
			Price:          99.99,
			Image:          "/assets/product-necklace-1.jpg",
			Category:       "Necklaces",
			Gender:         models.GenderMen,
			Description:    "Bold chain necklace for a statement look. Premium quality with secure clasp.",
			Material:       "Stainless Steel 316L",
			InventoryCount: 8,
		},
		{
			Name:           "Minimalist Bangle",
			Price:          44.99,
			Image:          "/assets/product-bracelet-1.jpg",
			Category:       "Bracelets",
			Gender:         models.GenderWomen,
			Description:    "Simple yet elegant bangle bracelet. Perfect for stacking or wearing alone.",
			Material:       "Stainless Steel 316L",
			InventoryCount: 15,
		},
		{
			Name:           "Stud Earrings Set",
			Price:          34.99,
			Image:          "/assets/product-earrings-1.jpg",
			Category:       "Earrings",
			Gender:         models.GenderWomen,
			Description:    "Versatile stud earrings perfect for daily wear. Hypoallergenic and comfortable.",
			Material:       "Stainless Steel 316L",
			InventoryCount: 40,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d catalog products", len(products))
	return nil
}
