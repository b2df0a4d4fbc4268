// Package redis provides a Redis-backed storage.PreferenceStore.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mmynk/idine/internal/storage"
)

var _ storage.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore keeps preferences under "pref:<user>:<key>".
type PreferenceStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewPreferenceStore wraps client. A ttl of 0 keeps values forever.
func NewPreferenceStore(client *goredis.Client, ttl time.Duration) *PreferenceStore {
	return &PreferenceStore{client: client, ttl: ttl}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func preferenceKey(userID, key string) string {
	return "pref:" + userID + ":" + key
}

// GetPreference returns the value or storage.ErrNotFound.
func (p *PreferenceStore) GetPreference(ctx context.Context, userID, key string) (string, error) {
	value, err := p.client.Get(ctx, preferenceKey(userID, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference: %w", err)
	}
	return value, nil
}

// SetPreference stores value, replacing any previous one.
func (p *PreferenceStore) SetPreference(ctx context.Context, userID, key, value string) error {
	if err := p.client.Set(ctx, preferenceKey(userID, key), value, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}
