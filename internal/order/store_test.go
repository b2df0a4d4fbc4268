package order

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/idine/internal/models"
)

var (
	toast  = models.MenuItem{ID: "toast", Name: "Maple French Toast", Price: 6, Restrictions: []string{"G", "V"}}
	steak  = models.MenuItem{ID: "steak", Name: "Fillet Steak", Price: 12}
	muesli = models.MenuItem{ID: "muesli", Name: "Power Muesli", Price: 4}
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("order-%d", n)
	}
}

func newTestStore(opts ...Option) *Store {
	base := []Option{
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
		WithIDGenerator(sequentialIDs()),
	}
	return New(append(base, opts...)...)
}

func ids(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestNewStoreDefaults(t *testing.T) {
	s := New()

	assert.Empty(t, s.Items())
	assert.Empty(t, s.Favorites())
	assert.Empty(t, s.History())
	assert.Equal(t, "", s.UserName())
	assert.Equal(t, 1, s.GuestCount())
	assert.False(t, s.LoggedIn())
	assert.Equal(t, PhaseCart, s.Phase())
	assert.Equal(t, 0, s.Total())
}

func TestTotalScenario(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, 0, s.Total())

	s.Add(steak)
	assert.Equal(t, 12, s.Total())

	s.Add(steak)
	assert.Equal(t, 24, s.Total())
	assert.Equal(t, 2, s.Count())
}

func TestTotalIndependentOfOrder(t *testing.T) {
	orders := [][]models.MenuItem{
		{toast, steak, muesli},
		{muesli, toast, steak},
		{steak, muesli, toast, toast},
	}
	for _, seq := range orders {
		s := newTestStore()
		want := 0
		for _, item := range seq {
			s.Add(item)
			want += item.Price
		}
		assert.Equal(t, want, s.Total(), "sequence %v", ids(seq))
	}
}

func TestAddQuantity(t *testing.T) {
	s := newTestStore()
	s.AddQuantity(toast, 3)
	assert.Equal(t, []string{"toast", "toast", "toast"}, ids(s.Items()))

	s.AddQuantity(steak, 0)
	s.AddQuantity(steak, -2)
	assert.Equal(t, 3, s.Count())
}

func TestRemoveAt(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	s.Add(steak)
	s.Add(muesli)

	require.True(t, s.RemoveAt(1))
	assert.Equal(t, []string{"toast", "muesli"}, ids(s.Items()))

	// Out of range is a no-op.
	assert.False(t, s.RemoveAt(5))
	assert.False(t, s.RemoveAt(-1))
	assert.Equal(t, []string{"toast", "muesli"}, ids(s.Items()))
}

func TestRemoveAtValidatesAtCallTime(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	s.Add(steak)

	captured := 1
	s.RemoveAt(0)

	// The cart shrank after the index was captured.
	assert.False(t, s.RemoveAt(captured))
	assert.Equal(t, []string{"steak"}, ids(s.Items()))
}

func TestRemoveAtOffsets(t *testing.T) {
	s := newTestStore()
	for _, item := range []models.MenuItem{toast, steak, muesli, toast} {
		s.Add(item)
	}

	removed := s.RemoveAtOffsets([]int{3, 0, 0, 9})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"steak", "muesli"}, ids(s.Items()))

	assert.Equal(t, 0, s.RemoveAtOffsets([]int{7}))
}

func TestRemoveByID(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	s.Add(steak)
	s.Add(toast)

	// Identifier equality: a differently priced copy still matches.
	repriced := toast
	repriced.Price = 99
	require.True(t, s.Remove(repriced.ID))
	assert.Equal(t, []string{"steak", "toast"}, ids(s.Items()))

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, 2, s.Count())
}

func TestToggleFavoriteInvolution(t *testing.T) {
	s := newTestStore()
	s.ToggleFavorite(muesli)
	before := ids(s.Favorites())

	assert.True(t, s.ToggleFavorite(toast))
	assert.True(t, s.IsFavorite(toast))

	assert.False(t, s.ToggleFavorite(toast))
	assert.False(t, s.IsFavorite(toast))

	assert.Equal(t, before, ids(s.Favorites()))
}

func TestToggleFavoriteKeyedByID(t *testing.T) {
	s := newTestStore()
	s.ToggleFavorite(toast)

	renamed := toast
	renamed.Name = "吐司"
	assert.True(t, s.IsFavorite(renamed))

	// Toggling the renamed copy removes the original; no duplicates.
	s.ToggleFavorite(renamed)
	assert.Empty(t, s.Favorites())

	s.ToggleFavorite(toast)
	s.ToggleFavorite(steak)
	s.ToggleFavorite(toast)
	s.ToggleFavorite(toast)
	assert.Equal(t, []string{"steak", "toast"}, ids(s.Favorites()))
}

func TestRemoveFavoritesAt(t *testing.T) {
	s := newTestStore()
	s.ToggleFavorite(toast)
	s.ToggleFavorite(steak)

	assert.Equal(t, 1, s.RemoveFavoritesAt([]int{0, 4}))
	assert.Equal(t, []string{"steak"}, ids(s.Favorites()))
	assert.False(t, s.IsFavorite(toast))
}

func TestFinalizeSnapshotsCart(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	s.Add(steak)

	rec := s.Finalize()
	assert.Equal(t, "order-1", rec.ID)
	assert.Equal(t, int64(1700000000), rec.CreatedAt)
	assert.Equal(t, 18, rec.TotalPrice)
	assert.Equal(t, PhaseFinalized, s.Phase())

	// Finalize does not clear.
	assert.Equal(t, 2, s.Count())

	s.Clear()
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Total())

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, []string{"toast", "steak"}, ids(history[0].Items))
	assert.Equal(t, 18, history[0].TotalPrice)
}

func TestFinalizeSnapshotSurvivesCartEdits(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	s.Finalize()

	s.Add(steak)
	s.RemoveAt(0)

	assert.Equal(t, []string{"toast"}, ids(s.History()[0].Items))
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	s.Finalize()

	items := s.Items()
	items[0].Name = "mutated"
	hist := s.History()
	hist[0].Items[0].Restrictions[0] = "X"

	assert.Equal(t, "Maple French Toast", s.Items()[0].Name)
	assert.Equal(t, "G", s.History()[0].Items[0].Restrictions[0])
}

func TestHistoryNewestFirst(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		s.Add(steak)
		s.Finalize()
		s.Clear()
	}

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, "order-3", history[0].ID)
	assert.Equal(t, "order-2", history[1].ID)
	assert.Equal(t, "order-1", history[2].ID)

	rec, ok := s.Record("order-2")
	require.True(t, ok)
	assert.Equal(t, 12, rec.TotalPrice)
	_, ok = s.Record("nope")
	assert.False(t, ok)
}

func TestFinalizeEmptyCart(t *testing.T) {
	s := newTestStore()
	rec := s.Finalize()
	assert.Equal(t, 0, rec.TotalPrice)
	assert.NotNil(t, rec.Items)
	assert.Empty(t, rec.Items)
}

func TestCheckoutPhases(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	assert.Equal(t, PhaseCart, s.Phase())

	rec := s.Finalize()
	assert.Equal(t, PhaseFinalized, s.Phase())

	assert.False(t, s.CompleteCheckout("other"))
	assert.Equal(t, 1, s.Count())

	assert.True(t, s.CompleteCheckout(rec.ID))
	assert.Equal(t, PhaseCleared, s.Phase())
	assert.Empty(t, s.Items())

	// A second completion is a no-op.
	assert.False(t, s.CompleteCheckout(rec.ID))

	s.Add(steak)
	assert.Equal(t, PhaseCart, s.Phase())
}

func TestCompleteCheckoutSkipsEditedCart(t *testing.T) {
	s := newTestStore()
	s.Add(toast)
	rec := s.Finalize()

	s.Add(steak)
	assert.False(t, s.CompleteCheckout(rec.ID))
	assert.Equal(t, []string{"toast", "steak"}, ids(s.Items()))
}

func TestClearWithoutFinalizeStaysInCart(t *testing.T) {
	s := newTestStore()
	s.Add(toast)

	var kinds []EventKind
	s.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	s.Clear()
	assert.Equal(t, PhaseCart, s.Phase())
	assert.Equal(t, []EventKind{EventCartChanged}, kinds)
}

func TestSubscribeEvents(t *testing.T) {
	s := newTestStore()

	var events []Event
	cancel := s.Subscribe(func(ev Event) {
		// Listeners may read the store.
		_ = s.Total()
		events = append(events, ev)
	})

	s.Add(toast)
	s.ToggleFavorite(toast)
	rec := s.Finalize()
	s.Clear()
	s.SetUserName("Kat")

	want := []Event{
		{Kind: EventCartChanged},
		{Kind: EventFavoritesChanged},
		{Kind: EventOrderFinalized, RecordID: rec.ID},
		{Kind: EventCartChanged},
		{Kind: EventCheckoutCompleted, RecordID: rec.ID},
		{Kind: EventProfileChanged},
	}
	assert.Equal(t, want, events)

	cancel()
	s.Add(steak)
	assert.Len(t, events, len(want))
}

func TestNoEventForNoOps(t *testing.T) {
	s := newTestStore()
	count := 0
	s.Subscribe(func(Event) { count++ })

	s.RemoveAt(0)
	s.Remove("missing")
	s.RemoveAtOffsets([]int{1})
	s.RemoveFavoritesAt([]int{1})
	s.AddQuantity(toast, 0)

	assert.Equal(t, 0, count)
}

func TestUserName(t *testing.T) {
	s := newTestStore()
	s.SetUserName("Katherine")
	assert.Equal(t, "Katherine", s.UserName())

	s.SetUserName("")
	assert.Equal(t, "", s.UserName())
}

func TestLogin(t *testing.T) {
	s := newTestStore()
	s.SetUserName("Kat")

	s.Login("")
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "Kat", s.UserName())

	s.Login("Katherine")
	assert.Equal(t, "Katherine", s.UserName())

	s.Logout()
	assert.False(t, s.LoggedIn())
	assert.Equal(t, "Katherine", s.UserName())

	s.SetGuestCount(4)
	assert.Equal(t, 4, s.GuestCount())
}

func TestWithHistory(t *testing.T) {
	seed := []models.OrderRecord{
		{ID: "b", Items: []models.MenuItem{steak}, TotalPrice: 12},
		{ID: "a", Items: []models.MenuItem{toast}, TotalPrice: 6},
	}
	s := newTestStore(WithHistory(seed))
	seed[0].Items[0].Name = "mutated"

	s.Finalize()
	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, "order-1", history[0].ID)
	assert.Equal(t, "b", history[1].ID)
	assert.Equal(t, "Fillet Steak", history[1].Items[0].Name)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Add(steak)
				_ = s.Total()
				s.ToggleFavorite(toast)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, s.Count())
	assert.Equal(t, 400*12, s.Total())
	assert.False(t, s.IsFavorite(toast))
}

func TestPhaseAndEventStrings(t *testing.T) {
	assert.Equal(t, "finalized", PhaseFinalized.String())
	assert.Equal(t, "checkout_completed", EventCheckoutCompleted.String())
}

func TestCheckoutPreconditions(t *testing.T) {
	s := newTestStore()

	_, err := s.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, s.History())

	s.Add(steak)
	rec, err := s.Checkout()
	require.NoError(t, err)
	assert.Equal(t, "order-1", rec.ID)
	assert.Equal(t, PhaseFinalized, s.Phase())

	_, err = s.Checkout()
	assert.ErrorIs(t, err, ErrCheckoutPending)
	assert.Len(t, s.History(), 1)

	require.True(t, s.CompleteCheckout(rec.ID))
	s.Add(toast)
	_, err = s.Checkout()
	require.NoError(t, err)
	assert.Len(t, s.History(), 2)
}

func TestConcurrentCheckoutFinalizesOnce(t *testing.T) {
	s := newTestStore()
	s.Add(steak)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Checkout(); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, s.History(), 1)
}

func TestAbortRestoresCart(t *testing.T) {
	s := newTestStore(WithHistory([]models.OrderRecord{{ID: "old", Items: []models.MenuItem{muesli}, TotalPrice: 4}}))
	s.Add(steak)
	s.Add(toast)

	rec, err := s.Checkout()
	require.NoError(t, err)
	require.Len(t, s.History(), 2)

	assert.True(t, s.Abort(rec.ID))
	assert.Equal(t, PhaseCart, s.Phase())
	assert.Equal(t, []string{"steak", "toast"}, ids(s.Items()))
	require.Len(t, s.History(), 1)
	assert.Equal(t, "old", s.History()[0].ID)
	assert.False(t, s.CompleteCheckout(rec.ID))

	assert.False(t, s.Abort(rec.ID))
	assert.False(t, s.Abort("missing"))

	retry, err := s.Checkout()
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, retry.ID)
	assert.Len(t, s.History(), 2)
}

func TestAbortAfterCartEditKeepsPhase(t *testing.T) {
	s := newTestStore()
	s.Add(steak)
	rec, err := s.Checkout()
	require.NoError(t, err)

	s.Add(toast)
	assert.True(t, s.Abort(rec.ID))
	assert.Empty(t, s.History())
	assert.Equal(t, PhaseCart, s.Phase())
	assert.Equal(t, []string{"steak", "toast"}, ids(s.Items()))
}

func TestSnapshot(t *testing.T) {
	s := newTestStore()
	s.Add(steak)
	s.Add(toast)
	s.Finalize()

	snap := s.Snapshot()
	assert.Equal(t, []string{"steak", "toast"}, ids(snap.Items))
	assert.Equal(t, 18, snap.Total)
	assert.Equal(t, PhaseFinalized, snap.Phase)

	snap.Items[0].Name = "changed"
	assert.Equal(t, "Fillet Steak", s.Items()[0].Name)
}
