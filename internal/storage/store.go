// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/idine/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// PreferenceLanguage is the key of the persisted menu language.
const PreferenceLanguage = "language"

// HistoryStore persists finalized orders.
type HistoryStore interface {
	// SaveOrder stores a snapshot of a finalized order for the user.
	// The record must already carry its ID and CreatedAt.
	SaveOrder(ctx context.Context, userID string, record *models.OrderRecord) error

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]models.OrderRecord, error)
}

// PreferenceStore persists small per-user string settings.
type PreferenceStore interface {
	// GetPreference returns ErrNotFound when the key was never set.
	GetPreference(ctx context.Context, userID, key string) (string, error)
	SetPreference(ctx context.Context, userID, key, value string) error
}

// UserStore persists diner accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns ErrNotFound when no account uses the address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is everything the server needs from its primary database.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	HistoryStore
	PreferenceStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
