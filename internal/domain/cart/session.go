// internal/domain/cart/session.go
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Session is the only entry point callers use to mutate a cart. It owns
// the live line-item sequence for the lifetime of one shopper session,
// sequences mutation -> recompute -> persist, and hands out read-only
// snapshots. Callers never receive a mutable reference to the live items.
type Session struct {
	mu          sync.Mutex
	id          string
	items       []LineItem
	discount    decimal.Decimal
	open        bool
	updatedAt   time.Time
	rules       Rules
	store       Store
	logger      *logrus.Logger
	subscribers []func(Snapshot)
}

const persistTimeout = 3 * time.Second

// NewSession creates a session and rehydrates it from the store. A missing,
// corrupt, or unreadable durable slot degrades to an empty cart with a
// logged warning; rehydration never fails the session.
func NewSession(id string, store Store, rules Rules, logger *logrus.Logger) *Session {
	s := &Session{
		id:        id,
		items:     []LineItem{},
		discount:  decimal.Zero,
		updatedAt: time.Now().UTC(),
		rules:     rules,
		store:     store,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	items, err := store.Load(ctx)
	if err != nil {
		logger.WithError(err).WithField("session_id", id).
			Warn("Cart rehydration failed, starting with an empty cart")
		return s
	}
	s.items = items
	return s
}

// AddItem adds quantity units of the product to the cart, merging into an
// existing line when the product is already present. Invalid quantities are
// rejected before the item sequence is touched.
func (s *Session) AddItem(snapshot ProductSnapshot, quantity int) (Snapshot, error) {
	s.mu.Lock()
	items, err := AddItem(s.items, snapshot, quantity)
	if err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	snap := s.commitLocked(items)
	s.mu.Unlock()

	s.persist(snap.Items)
	s.notify(snap)
	return snap, nil
}

// UpdateQuantity replaces a line's quantity; zero or below removes the line
func (s *Session) UpdateQuantity(productID string, quantity int) Snapshot {
	s.mu.Lock()
	snap := s.commitLocked(UpdateQuantity(s.items, productID, quantity))
	s.mu.Unlock()

	s.persist(snap.Items)
	s.notify(snap)
	return snap
}

// RemoveItem removes the matching line; no-op if absent
func (s *Session) RemoveItem(productID string) Snapshot {
	s.mu.Lock()
	snap := s.commitLocked(RemoveItem(s.items, productID))
	s.mu.Unlock()

	s.persist(snap.Items)
	s.notify(snap)
	return snap
}

// Clear empties the cart
func (s *Session) Clear() Snapshot {
	s.mu.Lock()
	snap := s.commitLocked(Clear(s.items))
	s.mu.Unlock()

	s.persist(snap.Items)
	s.notify(snap)
	return snap
}

// Open marks the cart visible. Visibility is orthogonal to the item
// sequence and is never persisted.
func (s *Session) Open() Snapshot {
	s.mu.Lock()
	s.open = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// Close marks the cart hidden
func (s *Session) Close() Snapshot {
	s.mu.Lock()
	s.open = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// Snapshot returns the current read-only view of the cart
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Items returns a copy of the current line items
func (s *Session) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// Totals returns the current derived totals
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Recompute(s.items, s.discount, s.rules)
}

// ItemCount returns the sum of all line quantities
func (s *Session) ItemCount() int {
	return s.Totals().ItemCount
}

// IsOpen reports the visibility flag
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// state change. Rendering concerns hook in here; the engine knows nothing
// about them.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// commitLocked installs a new item sequence and returns the resulting
// snapshot. Callers must hold s.mu.
func (s *Session) commitLocked(items []LineItem) Snapshot {
	s.items = items
	s.updatedAt = time.Now().UTC()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Items:     copyItems(s.items),
		Totals:    Recompute(s.items, s.discount, s.rules),
		IsOpen:    s.open,
		UpdatedAt: s.updatedAt,
	}
}

// persist writes through to the durable slot. Failures are logged and
// swallowed: the in-memory sequence stays authoritative for the session
// and the worst case is a cart that does not survive a reload.
func (s *Session) persist(items []LineItem) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.store.Save(ctx, items); err != nil {
		s.logger.WithError(err).WithField("session_id", s.id).
			Warn("Cart save failed, in-memory state remains authoritative")
	}
}

func (s *Session) notify(snap Snapshot) {
	s.mu.Lock()
	subscribers := make([]func(Snapshot), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}
