// Package order holds the live ordering state shared by every screen: the
// cart, favorites, order history and the diner's profile fields.
//
// A Store is constructed once per diner and passed to its consumers; there
// is no package-level instance.
package order

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/idine/internal/calculator"
	"github.com/mmynk/idine/internal/models"
)

// Checkout precondition failures.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrCheckoutPending = errors.New("checkout already in progress")
)

// Listener receives store events. It runs on the goroutine that made the
// change, after the store lock is released, so it may read the store.
type Listener func(Event)

// Store is the single source of truth for one diner's order state.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	items     []models.MenuItem
	favorites []models.MenuItem
	history   []models.OrderRecord

	userName   string
	guestCount int
	loggedIn   bool

	phase       Phase
	finalizedID string

	now   func() time.Time
	newID func() string

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextListen int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp order records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the order record ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithHistory seeds the store with previously persisted records, newest first.
func WithHistory(records []models.OrderRecord) Option {
	return func(s *Store) {
		s.history = make([]models.OrderRecord, len(records))
		for i, rec := range records {
			s.history[i] = rec.Clone()
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		guestCount: 1,
		phase:      PhaseCart,
		now:        time.Now,
		newID:      uuid.NewString,
		listeners:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every subsequent event. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.listenerMu.Lock()
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Store) emit(events ...Event) {
	s.listenerMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, len(ids))
	for i, id := range ids {
		fns[i] = s.listeners[id]
	}
	s.listenerMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// --- Cart ---

// Add appends item to the cart. Adding the same dish twice yields two entries.
func (s *Store) Add(item models.MenuItem) {
	s.AddQuantity(item, 1)
}

// AddQuantity appends n copies of item. n < 1 is a no-op.
func (s *Store) AddQuantity(item models.MenuItem, n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	for i := 0; i < n; i++ {
		s.items = append(s.items, item.Clone())
	}
	s.phase = PhaseCart
	s.mu.Unlock()

	s.emit(Event{Kind: EventCartChanged})
}

// RemoveAt removes the cart entry at index. The index is checked against the
// cart as it is now, not when the caller captured it; an out-of-range index
// is a no-op and returns false.
func (s *Store) RemoveAt(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		return false
	}
	s.items = removeIndex(s.items, index)
	s.phase = PhaseCart
	s.mu.Unlock()

	s.emit(Event{Kind: EventCartChanged})
	return true
}

// RemoveAtOffsets removes several cart positions at once (swipe-to-delete on
// a multi-row selection). Offsets refer to the cart before any removal;
// out-of-range and duplicate offsets are ignored. Returns the number removed.
func (s *Store) RemoveAtOffsets(offsets []int) int {
	s.mu.Lock()
	var removed int
	s.items, removed = removeOffsets(s.items, offsets)
	if removed > 0 {
		s.phase = PhaseCart
	}
	s.mu.Unlock()

	if removed > 0 {
		s.emit(Event{Kind: EventCartChanged})
	}
	return removed
}

// Remove removes the first cart entry with the given item ID. Absent IDs
// are a no-op and return false.
func (s *Store) Remove(itemID string) bool {
	s.mu.Lock()
	idx := indexOf(s.items, itemID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = removeIndex(s.items, idx)
	s.phase = PhaseCart
	s.mu.Unlock()

	s.emit(Event{Kind: EventCartChanged})
	return true
}

// Clear empties the cart. Records already produced by Finalize are
// unaffected. Clearing a finalized cart completes the checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	events := s.clearLocked()
	s.mu.Unlock()

	s.emit(events...)
}

// CompleteCheckout clears the cart only if the store is still finalized on
// recordID. A cart edited after finalizing is left alone. Returns whether
// the cart was cleared.
func (s *Store) CompleteCheckout(recordID string) bool {
	s.mu.Lock()
	if s.phase != PhaseFinalized || s.finalizedID != recordID {
		s.mu.Unlock()
		return false
	}
	events := s.clearLocked()
	s.mu.Unlock()

	s.emit(events...)
	return true
}

func (s *Store) clearLocked() []Event {
	s.items = nil
	events := []Event{{Kind: EventCartChanged}}
	if s.phase == PhaseFinalized {
		s.phase = PhaseCleared
		events = append(events, Event{Kind: EventCheckoutCompleted, RecordID: s.finalizedID})
	}
	return events
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Count returns the number of cart entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total is the sum of the cart prices. It is computed on every call.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.Total(s.items)
}

// Phase returns the current checkout phase.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// CartSnapshot is a consistent view of the cart.
type CartSnapshot struct {
	Items []models.MenuItem
	Total int
	Phase Phase
}

// Snapshot returns the cart items, total and phase read under one lock.
func (s *Store) Snapshot() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartSnapshot{
		Items: cloneItems(s.items),
		Total: calculator.Total(s.items),
		Phase: s.phase,
	}
}

// --- Checkout ---

// Finalize snapshots the cart into a new OrderRecord and puts it at the front
// of the history. It does not clear the cart; call Clear or CompleteCheckout
// afterwards.
func (s *Store) Finalize() models.OrderRecord {
	s.mu.Lock()
	rec := s.finalizeLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventOrderFinalized, RecordID: rec.ID})
	return rec.Clone()
}

// Checkout is Finalize guarded by the checkout preconditions: the cart must
// hold at least one item and must not be awaiting the clear of an earlier
// checkout. The check and the finalize happen under one lock.
func (s *Store) Checkout() (models.OrderRecord, error) {
	s.mu.Lock()
	switch {
	case s.phase == PhaseFinalized:
		s.mu.Unlock()
		return models.OrderRecord{}, ErrCheckoutPending
	case len(s.items) == 0:
		s.mu.Unlock()
		return models.OrderRecord{}, ErrEmptyCart
	}
	rec := s.finalizeLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventOrderFinalized, RecordID: rec.ID})
	return rec.Clone(), nil
}

// Abort removes the record recordID from the history. If the cart is still
// finalized on that record it returns to PhaseCart with its items intact,
// so the checkout can be retried. Returns whether the record was found.
func (s *Store) Abort(recordID string) bool {
	s.mu.Lock()
	idx := -1
	for i, rec := range s.history {
		if rec.ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	history := make([]models.OrderRecord, 0, len(s.history)-1)
	history = append(history, s.history[:idx]...)
	s.history = append(history, s.history[idx+1:]...)
	if s.phase == PhaseFinalized && s.finalizedID == recordID {
		s.phase = PhaseCart
		s.finalizedID = ""
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventCartChanged})
	return true
}

func (s *Store) finalizeLocked() models.OrderRecord {
	rec := models.OrderRecord{
		ID:         s.newID(),
		CreatedAt:  s.now().Unix(),
		Items:      cloneItems(s.items),
		TotalPrice: calculator.Total(s.items),
	}
	if rec.Items == nil {
		rec.Items = []models.MenuItem{}
	}
	s.history = append([]models.OrderRecord{rec}, s.history...)
	s.phase = PhaseFinalized
	s.finalizedID = rec.ID
	return rec
}

// History returns the finalized orders, newest first.
func (s *Store) History() []models.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OrderRecord, len(s.history))
	for i, rec := range s.history {
		out[i] = rec.Clone()
	}
	return out
}

// Record looks up a finalized order by ID.
func (s *Store) Record(id string) (models.OrderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.history {
		if rec.ID == id {
			return rec.Clone(), true
		}
	}
	return models.OrderRecord{}, false
}

// --- Favorites ---

// IsFavorite reports whether a favorite with item's ID exists.
func (s *Store) IsFavorite(item models.MenuItem) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.favorites, item.ID) >= 0
}

// ToggleFavorite removes item from favorites if present, otherwise appends
// it. Returns the new membership state.
func (s *Store) ToggleFavorite(item models.MenuItem) bool {
	s.mu.Lock()
	idx := indexOf(s.favorites, item.ID)
	favorite := idx < 0
	if favorite {
		s.favorites = append(s.favorites, item.Clone())
	} else {
		s.favorites = removeIndex(s.favorites, idx)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventFavoritesChanged})
	return favorite
}

// RemoveFavoritesAt removes favorites by position, with the same rules as
// RemoveAtOffsets.
func (s *Store) RemoveFavoritesAt(offsets []int) int {
	s.mu.Lock()
	var removed int
	s.favorites, removed = removeOffsets(s.favorites, offsets)
	s.mu.Unlock()

	if removed > 0 {
		s.emit(Event{Kind: EventFavoritesChanged})
	}
	return removed
}

// Favorites returns a copy of the favorites in the order they were added.
func (s *Store) Favorites() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.favorites)
}

// --- Profile ---

// SetUserName stores name verbatim. The empty string means unset.
func (s *Store) SetUserName(name string) {
	s.mu.Lock()
	s.userName = name
	s.mu.Unlock()

	s.emit(Event{Kind: EventProfileChanged})
}

// UserName returns exactly what was last set.
func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

// Login marks the diner as logged in. The user name is replaced only when
// name is non-empty.
func (s *Store) Login(name string) {
	s.mu.Lock()
	if name != "" {
		s.userName = name
	}
	s.loggedIn = true
	s.mu.Unlock()

	s.emit(Event{Kind: EventProfileChanged})
}

// Logout clears the logged-in flag. The user name is kept.
func (s *Store) Logout() {
	s.mu.Lock()
	s.loggedIn = false
	s.mu.Unlock()

	s.emit(Event{Kind: EventProfileChanged})
}

// LoggedIn reports the logged-in flag.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// SetGuestCount stores the party size. It is not validated.
func (s *Store) SetGuestCount(n int) {
	s.mu.Lock()
	s.guestCount = n
	s.mu.Unlock()

	s.emit(Event{Kind: EventProfileChanged})
}

// GuestCount returns the party size (1 by default).
func (s *Store) GuestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guestCount
}

// --- helpers ---

func indexOf(items []models.MenuItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(items []models.MenuItem, idx int) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

func removeOffsets(items []models.MenuItem, offsets []int) ([]models.MenuItem, int) {
	drop := make(map[int]bool, len(offsets))
	for _, off := range offsets {
		if off >= 0 && off < len(items) {
			drop[off] = true
		}
	}
	if len(drop) == 0 {
		return items, 0
	}
	out := make([]models.MenuItem, 0, len(items)-len(drop))
	for i, item := range items {
		if !drop[i] {
			out = append(out, item)
		}
	}
	return out, len(drop)
}

func cloneItems(items []models.MenuItem) []models.MenuItem {
	if items == nil {
		return nil
	}
	out := make([]models.MenuItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
