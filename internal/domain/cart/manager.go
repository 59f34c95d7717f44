// internal/domain/cart/manager.go
package cart

import (
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/config"
)

// Manager hands out one Session per shopper session id. Sessions are
// created lazily and rehydrated from their durable slot on first use;
// after that the in-memory instance is the source of truth.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger
}

// NewManager creates a new session manager
func NewManager(redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
	}
}

// Session returns the session for the given id, creating and rehydrating
// it if this is the first call for that id.
func (m *Manager) Session(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s
	}

	store := NewRedisStore(m.redisClient, m.config.Cart.KeyPrefix, sessionID, m.config.Cart.TTL)
	s := NewSession(sessionID, store, RulesFromConfig(m.config), m.logger)
	m.sessions[sessionID] = s
	return s
}

// Evict drops a session from memory. Its durable slot is untouched, so the
// next Session call for the same id rehydrates from storage.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// RulesFromConfig builds the pricing rules the aggregate applies
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		TaxRate:               cfg.Cart.TaxRate,
		ShippingFlatFee:       cfg.Cart.ShippingFlatFee,
		FreeShippingThreshold: cfg.Cart.FreeShippingThreshold,
	}
}
