package cart

import (
	"errors"
	"fmt"
)

// ErrInvalidAction marks an action whose payload breaks the reducer's
// contract, such as a missing id or a negative quantity.
var ErrInvalidAction = errors.New("invalid cart action")

// Item is one line of the cart.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Snapshot is the cart state at one instant. TotalAmount and TotalItems are
// always recomputed from Items.
type Snapshot struct {
	Items       []Item  `json:"items"`
	TotalAmount float64 `json:"totalAmount"`
	TotalItems  int     `json:"totalItems"`
}

// Initial returns the empty cart.
func Initial() Snapshot {
	return Snapshot{}
}

// Totals folds items into the cart's derived aggregates.
func Totals(items []Item) (amount float64, count int) {
	for _, item := range items {
		amount += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	return amount, count
}

// Clone returns a copy of s that shares no memory with it.
func (s Snapshot) Clone() Snapshot {
	if s.Items != nil {
		s.Items = append([]Item(nil), s.Items...)
	}
	return s
}

// IsEmpty reports whether the cart holds no items.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the item with the given id.
func (s Snapshot) Find(id string) (Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

// Verify checks the snapshot invariants: derived totals match a fresh fold,
// ids are unique and every quantity is at least one.
func (s Snapshot) Verify() error {
	seen := make(map[string]struct{}, len(s.Items))
	for _, item := range s.Items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Quantity < 1 {
			return fmt.Errorf("item %q has quantity %d", item.ID, item.Quantity)
		}
	}
	amount, count := Totals(s.Items)
	if amount != s.TotalAmount {
		return fmt.Errorf("totalAmount = %v, items sum to %v", s.TotalAmount, amount)
	}
	if count != s.TotalItems {
		return fmt.Errorf("totalItems = %d, items sum to %d", s.TotalItems, count)
	}
	return nil
}

func (s Snapshot) index(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// withItems builds a snapshot around items, recomputing the totals. An
// empty cart always carries nil items so it compares equal to Initial.
func withItems(items []Item) Snapshot {
	if len(items) == 0 {
		return Initial()
	}
	amount, count := Totals(items)
	return Snapshot{Items: items, TotalAmount: amount, TotalItems: count}
}
