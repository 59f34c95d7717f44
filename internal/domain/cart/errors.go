// internal/domain/cart/errors.go
package cart

import "errors"

// ErrInvalidQuantity is returned when an add or update request carries a
// quantity the cart cannot apply. It is the only caller-visible failure of
// the cart engine; persistence failures are absorbed internally.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")
