package cart

import "fmt"

// Reduce returns the cart that results from applying action to s. It never
// modifies s. Malformed payloads return an error wrapping ErrInvalidAction.
func Reduce(s Snapshot, action Action) (Snapshot, error) {
	switch a := action.(type) {
	case AddItem:
		return addItem(s, a)
	case RemoveItem:
		if a.ID == "" {
			return s, fmt.Errorf("%w: %s without id", ErrInvalidAction, TypeRemoveItem)
		}
		return removeItem(s, a.ID), nil
	case UpdateQuantity:
		return updateQuantity(s, a)
	case ClearCart:
		return Initial(), nil
	case nil:
		return s, fmt.Errorf("%w: nil action", ErrInvalidAction)
	default:
		return s, nil
	}
}

func addItem(s Snapshot, a AddItem) (Snapshot, error) {
	if a.Item.ID == "" {
		return s, fmt.Errorf("%w: %s without id", ErrInvalidAction, TypeAddItem)
	}
	if a.Item.Price < 0 {
		return s, fmt.Errorf("%w: %s %q has negative price %v", ErrInvalidAction, TypeAddItem, a.Item.ID, a.Item.Price)
	}

	items := make([]Item, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	if i := s.index(a.Item.ID); i >= 0 {
		items[i].Quantity++
		return withItems(items), nil
	}

	added := a.Item
	added.Quantity = 1
	return withItems(append(items, added)), nil
}

func removeItem(s Snapshot, id string) Snapshot {
	if s.index(id) < 0 {
		return s
	}
	items := make([]Item, 0, len(s.Items)-1)
	for _, item := range s.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return withItems(items)
}

func updateQuantity(s Snapshot, a UpdateQuantity) (Snapshot, error) {
	if a.ID == "" {
		return s, fmt.Errorf("%w: %s without id", ErrInvalidAction, TypeUpdateQuantity)
	}
	if a.Quantity < 0 {
		return s, fmt.Errorf("%w: %s %q to %d", ErrInvalidAction, TypeUpdateQuantity, a.ID, a.Quantity)
	}
	if a.Quantity == 0 {
		return removeItem(s, a.ID), nil
	}

	i := s.index(a.ID)
	if i < 0 {
		return s, nil
	}
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	items[i].Quantity = a.Quantity
	return withItems(items), nil
}
