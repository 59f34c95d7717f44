// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is the copy of a product taken when it is first added to
// the cart. The cart prices items from this snapshot for the rest of the
// session; it never re-fetches live catalog prices.
type ProductSnapshot struct {
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountPrice   *decimal.Decimal `json:"discount_price,omitempty"`
	Stock           int              `json:"stock"`
}

// LineItem represents one product entry in the cart
type LineItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product_snapshot"`
	AddedAt   time.Time       `json:"added_at"`
}

// Totals represents the derived monetary state of the cart. Totals are
// always recomputed from the line items and never persisted.
type Totals struct {
	ItemCount int             `json:"item_count"` // Sum of all quantities
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// Snapshot is the read-only view of a cart session handed to callers.
// Mutating a Snapshot has no effect on the live session.
type Snapshot struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Totals    Totals     `json:"totals"`
	IsOpen    bool       `json:"is_open"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Rules holds the pricing rules applied when deriving totals
type Rules struct {
	TaxRate               decimal.Decimal
	ShippingFlatFee       decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}
