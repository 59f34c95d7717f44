// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-cart/internal/domain/catalog"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		// Catalog domain in dependency order
		&catalog.Category{},
		&catalog.Product{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedInitialData seeds a small development catalog so the storefront has
// something to list and the cart has something to add. Idempotent: skips
// seeding when products already exist.
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("ℹ️ Catalog already seeded, skipping")
		return nil
	}

	log.Println("🌱 Seeding development catalog...")

	apparel := catalog.Category{
		ID:          uuid.New().String(),
		Name:        "Apparel",
		Slug:        "apparel",
		Description: "Clothing and accessories",
		SortOrder:   1,
		IsActive:    true,
	}
	home := catalog.Category{
		ID:          uuid.New().String(),
		Name:        "Home & Living",
		Slug:        "home-living",
		Description: "Homeware and decor",
		SortOrder:   2,
		IsActive:    true,
	}

	if err := m.db.Create(&[]catalog.Category{apparel, home}).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	tenPercent := decimal.RequireFromString("10")
	saleprice := decimal.RequireFromString("24.99")

	products := []catalog.Product{
		{
			ID:         uuid.New().String(),
			SKU:        "APP-TEE-001",
			Name:       "Classic Cotton Tee",
			Slug:       "classic-cotton-tee",
			Price:      decimal.RequireFromString("19.99"),
			Stock:      120,
			IsActive:   true,
			IsFeatured: true,
			CategoryID: apparel.ID,
		},
		{
			ID:              uuid.New().String(),
			SKU:             "APP-HOOD-001",
			Name:            "Fleece Hoodie",
			Slug:            "fleece-hoodie",
			Price:           decimal.RequireFromString("50.00"),
			DiscountPercent: &tenPercent,
			Stock:           60,
			IsActive:        true,
			CategoryID:      apparel.ID,
		},
		{
			ID:            uuid.New().String(),
			SKU:           "HOM-MUG-001",
			Name:          "Stoneware Mug Set",
			Slug:          "stoneware-mug-set",
			Price:         decimal.RequireFromString("29.99"),
			DiscountPrice: &saleprice,
			Stock:         45,
			IsActive:      true,
			IsFeatured:    true,
			CategoryID:    home.ID,
		},
		{
			ID:         uuid.New().String(),
			SKU:        "HOM-THROW-001",
			Name:       "Woven Throw Blanket",
			Slug:       "woven-throw-blanket",
			Price:      decimal.RequireFromString("64.50"),
			Stock:      0, // intentionally out of stock for UI checks
			IsActive:   true,
			CategoryID: home.ID,
		},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("✅ Seeded %d categories and %d products", 2, len(products))
	return nil
}
