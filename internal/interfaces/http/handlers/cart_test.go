package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/domain/cart"
	"github.com/your-org/storefront-cart/internal/domain/catalog"
	"github.com/your-org/storefront-cart/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-cart/internal/pkg/session"
)

type memStore struct {
	m     sync.Mutex
	items []cart.LineItem
}

func (s *memStore) Load(context.Context) ([]cart.LineItem, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return append([]cart.LineItem{}, s.items...), nil
}

func (s *memStore) Save(_ context.Context, items []cart.LineItem) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.items = append([]cart.LineItem{}, items...)
	return nil
}

func (s *memStore) Delete(context.Context) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.items = nil
	return nil
}

type stubSessions struct {
	session *cart.Session
}

func (p *stubSessions) Session(string) *cart.Session {
	return p.session
}

type stubFinder struct {
	products map[string]*catalog.Product
}

func (f *stubFinder) GetProduct(id string) (*catalog.Product, error) {
	if prod, ok := f.products[id]; ok {
		return prod, nil
	}
	return nil, catalog.ErrProductNotFound
}

type cartResponse struct {
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Data    cart.Snapshot `json:"data"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront Cart Test"
	cfg.App.Environment = "development"
	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Session.CookieName = "cart_session"
	cfg.Session.CookieMaxAge = time.Hour
	return cfg
}

func testRules() cart.Rules {
	return cart.Rules{
		TaxRate:               decimal.RequireFromString("0.07"),
		ShippingFlatFee:       decimal.RequireFromString("5.99"),
		FreeShippingThreshold: decimal.RequireFromString("100"),
	}
}

func discountedHoodie() *catalog.Product {
	pct := decimal.RequireFromString("10")
	return &catalog.Product{
		ID:              "p1",
		SKU:             "APP-HOOD-001",
		Name:            "Fleece Hoodie",
		Slug:            "fleece-hoodie",
		Price:           decimal.RequireFromString("50.00"),
		DiscountPercent: &pct,
		Stock:           60,
		IsActive:        true,
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *cart.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := testConfig()
	sess := cart.NewSession("test-session", &memStore{}, testRules(), logger)
	finder := &stubFinder{products: map[string]*catalog.Product{
		"p1": discountedHoodie(),
	}}

	handler := NewCartHandler(&stubSessions{session: sess}, finder, logger)

	router := gin.New()
	group := router.Group("/api/v1/cart")
	group.Use(middleware.ShopperSession(cfg, session.NewTokenManager(cfg)))
	{
		group.GET("", handler.GetCart)
		group.DELETE("", handler.ClearCart)
		group.GET("/count", handler.GetCartCount)
		group.POST("/open", handler.OpenCart)
		group.POST("/close", handler.CloseCart)
		group.POST("/items", handler.AddToCart)
		group.PUT("/items/:id", handler.UpdateCartItem)
		group.DELETE("/items/:id", handler.RemoveFromCart)
	}

	return router, sess
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestGetCartStartsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := perform(t, router, http.MethodGet, "/api/v1/cart", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.Items)
	assert.False(t, resp.Data.IsOpen)
	assert.True(t, resp.Data.Totals.Subtotal.IsZero())
}

func TestAddToCartWithExplicitQuantity(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := perform(t, router, http.MethodPost, "/api/v1/cart/items",
		`{"product_id": "p1", "quantity": 2}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 2, resp.Data.Items[0].Quantity)
	assert.True(t, resp.Data.Totals.Subtotal.Equal(decimal.RequireFromString("90.00")))
	assert.True(t, resp.Data.Totals.Total.Equal(decimal.RequireFromString("102.29")))
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := perform(t, router, http.MethodPost, "/api/v1/cart/items",
		`{"product_id": "p1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 1, resp.Data.Items[0].Quantity)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	router, sess := newTestRouter(t)

	for _, body := range []string{
		`{"product_id": "p1", "quantity": 0}`,
		`{"product_id": "p1", "quantity": -3}`,
	} {
		w, resp := perform(t, router, http.MethodPost, "/api/v1/cart/items", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.NotEmpty(t, resp.Error)
	}

	assert.Empty(t, sess.Items())
}

func TestAddToCartRejectsNonIntegerQuantity(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := perform(t, router, http.MethodPost, "/api/v1/cart/items",
		`{"product_id": "p1", "quantity": 1.5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := perform(t, router, http.MethodPost, "/api/v1/cart/items",
		`{"product_id": "missing", "quantity": 1}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	router, _ := newTestRouter(t)

	perform(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id": "p1", "quantity": 1}`)
	w, resp := perform(t, router, http.MethodPut, "/api/v1/cart/items/p1", `{"quantity": 4}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 4, resp.Data.Items[0].Quantity)
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	router, _ := newTestRouter(t)

	perform(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id": "p1", "quantity": 2}`)
	w, resp := perform(t, router, http.MethodPut, "/api/v1/cart/items/p1", `{"quantity": 0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.Items)
}

func TestUpdateCartItemRequiresQuantityField(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := perform(t, router, http.MethodPut, "/api/v1/cart/items/p1", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveFromCart(t *testing.T) {
	router, _ := newTestRouter(t)

	perform(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id": "p1", "quantity": 2}`)
	w, resp := perform(t, router, http.MethodDelete, "/api/v1/cart/items/p1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.Items)

	// Removing again is still a 200 no-op
	w, _ = perform(t, router, http.MethodDelete, "/api/v1/cart/items/p1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClearCart(t *testing.T) {
	router, sess := newTestRouter(t)

	perform(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id": "p1", "quantity": 2}`)
	w, resp := perform(t, router, http.MethodDelete, "/api/v1/cart", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.Items)
	assert.Empty(t, sess.Items())
}

func TestCartCount(t *testing.T) {
	router, _ := newTestRouter(t)

	perform(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id": "p1", "quantity": 3}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.Count)
}

func TestOpenAndCloseCart(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := perform(t, router, http.MethodPost, "/api/v1/cart/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Data.IsOpen)

	// Item mutations are legal while open and leave the flag alone
	_, resp = perform(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id": "p1", "quantity": 1}`)
	assert.True(t, resp.Data.IsOpen)

	w, resp = perform(t, router, http.MethodPost, "/api/v1/cart/close", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Data.IsOpen)
	require.Len(t, resp.Data.Items, 1)
}

func TestSessionCookieIssued(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}
