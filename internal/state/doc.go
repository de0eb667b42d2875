// Package state provides the action-driven store shared by every part of
// Trolley that holds application state.
//
// # Overview
//
// A Store owns exactly one current snapshot. Snapshots are never edited in
// place: the only way to produce a new one is to dispatch actions, which a
// pure Reducer folds over the previous snapshot. Consumers read the
// snapshot with State or receive it through Subscribe.
//
//	caller ──Dispatch/Batch──> queue ──Reducer (FIFO)──> snapshot ──> subscribers
//
// # Units of Work
//
// Dispatch is a unit of work holding one action. Batch groups every action
// dispatched from its callback into one unit of work:
//
//	err := store.Batch(func(dispatch func(cart.Action)) {
//		dispatch(cart.AddItem{Item: course})
//		dispatch(cart.UpdateQuantity{ID: course.ID, Quantity: 3})
//	})
//
// Actions are queued while the callback runs and applied when it returns.
// Each reducer call consumes the output of the previous call, never the
// snapshot that was current when the batch opened, so three functional
// increments of +1, +5 and +10 on 0 end at 16. Subscribers are notified once
// per batch with the final snapshot; an empty batch notifies nobody.
//
// # Rejection
//
// A reducer returns an error only for a malformed action (a caller contract
// violation). The batch containing it is dropped whole: the store keeps its
// last good snapshot, subscribers are not called, and the error is returned
// to the caller wrapped with the position of the failing action.
//
// # Initialization
//
// New resolves its Initializer once. Initial wraps a plain value; Lazy wraps
// a function for initial state that is expensive to compute, such as a
// value decoded from persisted storage. The function is never called again.
//
// # Simple Values
//
// Value is the single-cell case: a Store whose reducer either replaces the
// value (Set) or applies a function to the previous one (Apply). Replacement
// is whole-value; struct fields are not merged.
//
// # Concurrency
//
// Flushes are serialized by a mutex. Each goroutine that dispatches (a timer,
// an I/O completion) forms its own units of work and no ordering between
// them is promised. Whatever order the flushes land in, subscribers hear
// about them in that same order, one goroutine delivering at a time.
//
// Listeners are called without the lock held and may dispatch again. Such a
// dispatch is a new unit of work; its notification is delivered after the
// current one finishes, so the nested Dispatch returns before its own
// subscribers run.
package state
