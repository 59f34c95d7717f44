package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	// Cart pricing defaults
	assert.True(t, cfg.Cart.TaxRate.Equal(decimal.RequireFromString("0.07")))
	assert.True(t, cfg.Cart.ShippingFlatFee.Equal(decimal.RequireFromString("5.99")))
	assert.True(t, cfg.Cart.FreeShippingThreshold.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, "cart:session", cfg.Cart.KeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Cart.TTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CART_TAX_RATE", "0.08")
	t.Setenv("CART_SHIPPING_FLAT_FEE", "4.50")
	t.Setenv("CART_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Cart.TaxRate.Equal(decimal.RequireFromString("0.08")))
	assert.True(t, cfg.Cart.ShippingFlatFee.Equal(decimal.RequireFromString("4.50")))
	assert.Equal(t, time.Hour, cfg.Cart.TTL)
}

func TestLoadInvalidDecimalFallsBackToDefault(t *testing.T) {
	t.Setenv("CART_TAX_RATE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cart.TaxRate.Equal(decimal.RequireFromString("0.07")))
}

func TestValidateRejectsShortSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestDSNBuilders(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.GetDatabaseDSN(), "host=localhost")
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=storefront_db")
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}
