// Package cart implements the shopping cart reducer.
//
// Reduce handles four actions: AddItem, RemoveItem, UpdateQuantity and
// ClearCart. Every branch that changes Items rebuilds the snapshot through
// one helper that refolds TotalAmount and TotalItems from the items, so the
// totals are never adjusted on their own. An UpdateQuantity to zero is a
// removal, ClearCart returns Initial, and unknown actions return the input
// snapshot untouched.
//
// Actions travel as JSON envelopes ({"type": "ADD_ITEM", "payload": {...}})
// when replayed from a file; see DecodeAction.
package cart
