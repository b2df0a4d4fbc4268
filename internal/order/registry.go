package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/idine/internal/models"
)

// HistoryLoader returns the persisted history for a diner, newest first.
type HistoryLoader func(ctx context.Context, userID string) ([]models.OrderRecord, error)

// Registry owns one Store per diner for the server process.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
	load   HistoryLoader
	opts   []Option
}

// NewRegistry creates a registry. load may be nil, in which case new stores
// start with an empty history. opts are applied to every new store.
func NewRegistry(load HistoryLoader, opts ...Option) *Registry {
	return &Registry{
		stores: make(map[string]*Store),
		load:   load,
		opts:   opts,
	}
}

// Get returns the diner's store, creating and hydrating it on first use.
func (r *Registry) Get(ctx context.Context, userID string) (*Store, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required")
	}

	r.mu.Lock()
	s, ok := r.stores[userID]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	// History is loaded without holding the lock so a slow query does not
	// block other diners.
	opts := append([]Option(nil), r.opts...)
	if r.load != nil {
		records, err := r.load(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load order history: %w", err)
		}
		opts = append(opts, WithHistory(records))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[userID]; ok {
		return s, nil
	}
	s = New(opts...)
	r.stores[userID] = s
	return s, nil
}

// Drop forgets the diner's store. The next Get starts a fresh cart.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	delete(r.stores, userID)
	r.mu.Unlock()
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
