package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/trolley/internal/kv"
	"github.com/five82/trolley/internal/state"
)

// Store is the cart's state store.
type Store = state.Store[Snapshot, Action]

// NewStore builds a cart store around Reduce.
func NewStore(init state.Initializer[Snapshot], opts ...state.Option) *Store {
	return state.New(Reduce, init, opts...)
}

// Encode renders the cart's items for persistence. Totals are not stored;
// Seed recomputes them.
func Encode(s Snapshot) (string, error) {
	items := s.Items
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(raw), nil
}

// Decode parses items written by Encode. Entries with an empty id or a
// quantity below one are dropped, as are repeated ids after the first.
func Decode(raw string) (Snapshot, error) {
	var stored []Item
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return Initial(), fmt.Errorf("decode cart: %w", err)
	}
	seen := make(map[string]struct{}, len(stored))
	items := make([]Item, 0, len(stored))
	for _, item := range stored {
		if item.ID == "" || item.Quantity < 1 || item.Price < 0 {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return withItems(items), nil
}

// Seed returns a lazy initializer that loads the cart persisted under key,
// falling back to the empty cart when nothing usable is stored.
func Seed(g kv.Getter, key string, logger *slog.Logger) state.Initializer[Snapshot] {
	if logger == nil {
		logger = slog.Default()
	}
	return state.Lazy(func() Snapshot {
		raw, err := g.Get(key)
		if err != nil {
			if !errors.Is(err, kv.ErrNotFound) {
				logger.Warn("cart seed read failed", "key", key, "error", err)
			}
			return Initial()
		}
		snap, err := Decode(raw)
		if err != nil {
			logger.Warn("discarding persisted cart", "key", key, "error", err)
			return Initial()
		}
		logger.Info("restored cart", "items", len(snap.Items), "total_items", snap.TotalItems)
		return snap
	})
}
