package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/idine/internal/models"
)

func TestRegistryGet(t *testing.T) {
	calls := 0
	load := func(ctx context.Context, userID string) ([]models.OrderRecord, error) {
		calls++
		return []models.OrderRecord{{ID: "old-" + userID, TotalPrice: 5}}, nil
	}
	reg := NewRegistry(load)
	ctx := context.Background()

	alice, err := reg.Get(ctx, "alice")
	require.NoError(t, err)
	again, err := reg.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, alice, again)
	assert.Equal(t, 1, calls)

	bob, err := reg.Get(ctx, "bob")
	require.NoError(t, err)
	assert.NotSame(t, alice, bob)
	assert.Equal(t, "old-bob", bob.History()[0].ID)

	alice.Add(steak)
	assert.Equal(t, 0, bob.Count())
	assert.Equal(t, 2, reg.Len())

	reg.Drop("alice")
	fresh, err := reg.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Count())
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistry(func(ctx context.Context, userID string) ([]models.OrderRecord, error) {
		return nil, errors.New("db down")
	})

	_, err := reg.Get(context.Background(), "")
	assert.Error(t, err)

	_, err = reg.Get(context.Background(), "alice")
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryNilLoader(t *testing.T) {
	reg := NewRegistry(nil, WithIDGenerator(func() string { return "fixed" }))
	s, err := reg.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "fixed", s.Finalize().ID)
}

func TestRegistrySlowLoadDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	reg := NewRegistry(func(ctx context.Context, userID string) ([]models.OrderRecord, error) {
		if userID == "slow" {
			close(started)
			<-release
		}
		return nil, nil
	})
	ctx := context.Background()

	bob, err := reg.Get(ctx, "bob")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := reg.Get(ctx, "slow")
		done <- err
	}()
	<-started

	got := make(chan *Store, 1)
	go func() {
		s, _ := reg.Get(ctx, "bob")
		got <- s
	}()
	select {
	case s := <-got:
		assert.Same(t, bob, s)
	case <-time.After(time.Second):
		t.Fatal("Get blocked behind another diner's history load")
	}

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryConcurrentGetSharesStore(t *testing.T) {
	reg := NewRegistry(func(ctx context.Context, userID string) ([]models.OrderRecord, error) {
		return []models.OrderRecord{{ID: "old"}}, nil
	})

	stores := make([]*Store, 16)
	var wg sync.WaitGroup
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := reg.Get(context.Background(), "alice")
			assert.NoError(t, err)
			stores[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range stores {
		assert.Same(t, stores[0], s)
	}
	assert.Equal(t, 1, reg.Len())
}
