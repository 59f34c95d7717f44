// internal/domain/cart/aggregate.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pure mutations over a line-item sequence. Every function returns a new
// slice and leaves its input untouched; the Session controller owns the
// live sequence and is the only caller.

var oneHundred = decimal.NewFromInt(100)

// AddItem merges quantity into an existing line for the product or appends
// a new line with a snapshot of the product. The requested quantity must be
// positive; non-positive requests are rejected, never clamped.
func AddItem(items []LineItem, snapshot ProductSnapshot, quantity int) ([]LineItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	result := copyItems(items)
	for i := range result {
		if result[i].ProductID == snapshot.ProductID {
			result[i].Quantity += quantity
			return result, nil
		}
	}

	return append(result, LineItem{
		ProductID: snapshot.ProductID,
		Quantity:  quantity,
		Product:   snapshot,
		AddedAt:   time.Now().UTC(),
	}), nil
}

// UpdateQuantity replaces the quantity of the matching line. A quantity of
// zero or below removes the line. Unknown product ids are a no-op.
func UpdateQuantity(items []LineItem, productID string, quantity int) []LineItem {
	if quantity <= 0 {
		return RemoveItem(items, productID)
	}

	result := copyItems(items)
	for i := range result {
		if result[i].ProductID == productID {
			result[i].Quantity = quantity
			break
		}
	}
	return result
}

// RemoveItem filters out the matching line; no-op if absent
func RemoveItem(items []LineItem, productID string) []LineItem {
	result := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			result = append(result, item)
		}
	}
	return result
}

// Clear returns an empty sequence
func Clear([]LineItem) []LineItem {
	return []LineItem{}
}

// EffectivePrice returns the per-unit price after applying any discount:
// the explicit discount price when set, else price reduced by the discount
// percentage, else the list price.
func EffectivePrice(snapshot ProductSnapshot) decimal.Decimal {
	if snapshot.DiscountPrice != nil {
		return *snapshot.DiscountPrice
	}
	if snapshot.DiscountPercent != nil {
		factor := oneHundred.Sub(*snapshot.DiscountPercent).Div(oneHundred)
		return snapshot.Price.Mul(factor).Round(2)
	}
	return snapshot.Price
}

// Recompute folds the line items into derived totals. It is safe on an
// empty sequence and yields identical results for identical inputs.
// Shipping is waived only when the subtotal is strictly above the
// free-shipping threshold, so a subtotal exactly at the threshold still
// pays the flat fee.
func Recompute(items []LineItem, priorDiscount decimal.Decimal, rules Rules) Totals {
	totals := Totals{
		Subtotal: decimal.Zero,
		Discount: priorDiscount,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, item := range items {
		totals.ItemCount += item.Quantity
		lineTotal := EffectivePrice(item.Product).Mul(decimal.NewFromInt(int64(item.Quantity)))
		totals.Subtotal = totals.Subtotal.Add(lineTotal)
	}

	totals.Tax = totals.Subtotal.Mul(rules.TaxRate).Round(2)
	if totals.Subtotal.GreaterThan(rules.FreeShippingThreshold) {
		totals.Shipping = decimal.Zero
	} else {
		totals.Shipping = rules.ShippingFlatFee
	}

	totals.Total = totals.Subtotal.
		Add(totals.Tax).
		Add(totals.Shipping).
		Sub(totals.Discount)

	return totals
}

func copyItems(items []LineItem) []LineItem {
	result := make([]LineItem, len(items))
	copy(result, items)
	return result
}
