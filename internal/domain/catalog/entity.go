// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog product. The cart engine treats these
// records as immutable inputs.
type Product struct {
	ID              string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SKU             string           `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name            string           `gorm:"not null;size:255" json:"name"`
	Slug            string           `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description     string           `gorm:"type:text" json:"description"`
	Price           decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountPercent *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percent,omitempty"`
	DiscountPrice   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_price,omitempty"`
	Stock           int              `gorm:"default:0" json:"stock"`
	ImageURL        string           `gorm:"size:500" json:"image_url"`
	IsActive        bool             `gorm:"default:true" json:"is_active"`
	IsFeatured      bool             `gorm:"default:false" json:"is_featured"`
	CategoryID      string           `gorm:"not null;index;type:varchar(36)" json:"category_id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// Category represents a product category for listing pages
type Category struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	Image       string         `gorm:"size:500" json:"image"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName overrides the table name
func (Category) TableName() string {
	return "categories"
}

// InStock reports whether the product currently has units available.
// The cart engine does not consult this; listing pages do.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
