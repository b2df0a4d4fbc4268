package models

// OrderRecord is an immutable snapshot of a completed order.
// It is created once by finalizing a cart and never modified afterwards.
type OrderRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// CreatedAt is the Unix timestamp when the order was finalized.
	CreatedAt int64 `json:"createdAt"`

	// Items is a copy of the cart at finalize time, in cart order.
	Items []MenuItem `json:"items"`

	// TotalPrice is the cart total at finalize time, in whole currency units.
	TotalPrice int `json:"totalPrice"`
}

// Clone returns a deep copy of the record.
func (r OrderRecord) Clone() OrderRecord {
	out := r
	out.Items = make([]MenuItem, len(r.Items))
	for i, item := range r.Items {
		out.Items[i] = item.Clone()
	}
	return out
}
