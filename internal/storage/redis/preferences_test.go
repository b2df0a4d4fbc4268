package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mmynk/idine/internal/storage"
)

func TestPreferenceStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewPreferenceStore(client, 0)
	ctx := context.Background()

	if _, err := store.GetPreference(ctx, "alice", storage.PreferenceLanguage); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.SetPreference(ctx, "alice", storage.PreferenceLanguage, "zh"); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	got, err := store.GetPreference(ctx, "alice", storage.PreferenceLanguage)
	if err != nil {
		t.Fatalf("GetPreference failed: %v", err)
	}
	if got != "zh" {
		t.Errorf("language = %q, want zh", got)
	}

	if v, _ := mr.Get("pref:alice:language"); v != "zh" {
		t.Errorf("raw key = %q, want zh", v)
	}
}

func TestPreferenceStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewPreferenceStore(client, time.Minute)
	ctx := context.Background()

	if err := store.SetPreference(ctx, "bob", storage.PreferenceLanguage, "en"); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.GetPreference(ctx, "bob", storage.PreferenceLanguage); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected expired preference, got %v", err)
	}
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Dial(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	client.Close()

	if _, err := Dial(context.Background(), "127.0.0.1:1"); err == nil {
		t.Error("expected error dialing a closed server")
	}
}
