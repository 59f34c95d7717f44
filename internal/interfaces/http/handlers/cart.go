// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/domain/cart"
	"github.com/your-org/storefront-cart/internal/domain/catalog"
	"github.com/your-org/storefront-cart/internal/interfaces/http/middleware"
)

// ProductFinder resolves product ids for add-to-cart requests. The catalog
// service implements it; tests substitute a stub.
type ProductFinder interface {
	GetProduct(id string) (*catalog.Product, error)
}

// SessionProvider hands out the cart session for a shopper session id.
// The cart manager implements it.
type SessionProvider interface {
	Session(sessionID string) *cart.Session
}

// CartHandler handles cart endpoints
type CartHandler struct {
	sessions SessionProvider
	catalog  ProductFinder
	logger   *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions SessionProvider, finder ProductFinder, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  finder,
		logger:   logger,
	}
}

// AddToCartRequest represents an add to cart request. Quantity is a pointer
// so an omitted field can default to 1 while an explicit zero is rejected.
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// UpdateCartItemRequest represents an update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    session.Snapshot(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	prod, err := h.catalog.GetProduct(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found or inactive",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to resolve product for cart add")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve product",
		})
		return
	}

	snap, err := session.AddItem(snapshotFromProduct(prod), quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    snap,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// A quantity of zero or below removes the line
	snap := session.UpdateQuantity(productID, *req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    snap,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	snap := session.RemoveItem(productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    snap,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	snap := session.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    snap,
	})
}

// OpenCart handles POST /cart/open
func (h *CartHandler) OpenCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart opened",
		"data":    session.Open(),
	})
}

// CloseCart handles POST /cart/close
func (h *CartHandler) CloseCart(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart closed",
		"data":    session.Close(),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": session.ItemCount(),
		},
	})
}

// session resolves the shopper's cart session from the request context
func (h *CartHandler) session(c *gin.Context) (*cart.Session, bool) {
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Shopper session unavailable",
		})
		return nil, false
	}
	return h.sessions.Session(sessionID), true
}

// snapshotFromProduct copies the catalog record into the cart's add-time
// snapshot. Pointer fields are re-allocated so later catalog edits cannot
// reach into a live cart.
func snapshotFromProduct(p *catalog.Product) cart.ProductSnapshot {
	snap := cart.ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
	}
	if p.DiscountPercent != nil {
		pct := *p.DiscountPercent
		snap.DiscountPercent = &pct
	}
	if p.DiscountPrice != nil {
		price := *p.DiscountPrice
		snap.DiscountPrice = &price
	}
	return snap
}
