package order

// Phase is the checkout state of a Store.
//
//	Cart ──Finalize──▶ Finalized ──Clear/CompleteCheckout──▶ Cleared
//	  ▲                    │                                    │
//	  └──── Add/Remove ────┴──────────── Add/Remove ────────────┘
type Phase int

const (
	// PhaseCart means the cart is being edited.
	PhaseCart Phase = iota
	// PhaseFinalized means a record was taken and the cart is awaiting its clear.
	PhaseFinalized
	// PhaseCleared means the finalized cart was emptied; the checkout is complete.
	PhaseCleared
)

func (p Phase) String() string {
	switch p {
	case PhaseCart:
		return "cart"
	case PhaseFinalized:
		return "finalized"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// EventKind identifies what changed in a Store.
type EventKind int

const (
	EventCartChanged EventKind = iota
	EventFavoritesChanged
	EventOrderFinalized
	// EventCheckoutCompleted fires when a finalized cart is cleared. Views use it
	// to navigate back to the menu.
	EventCheckoutCompleted
	EventProfileChanged
)

func (k EventKind) String() string {
	switch k {
	case EventCartChanged:
		return "cart_changed"
	case EventFavoritesChanged:
		return "favorites_changed"
	case EventOrderFinalized:
		return "order_finalized"
	case EventCheckoutCompleted:
		return "checkout_completed"
	case EventProfileChanged:
		return "profile_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a mutation.
type Event struct {
	Kind EventKind
	// RecordID is set for EventOrderFinalized and EventCheckoutCompleted.
	RecordID string
}
