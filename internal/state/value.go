package state

import "errors"

// ErrEmptyUpdate is returned when a Value receives an Update built with
// neither Set nor a non-nil Apply function.
var ErrEmptyUpdate = errors.New("empty value update")

// Update is a change dispatched to a Value: either a replacement value or a
// function of the previous value.
type Update[T any] struct {
	fn      func(T) T
	value   T
	replace bool
}

// Set returns an Update that replaces the value verbatim. Struct values are
// replaced whole, never merged with the previous value.
func Set[T any](v T) Update[T] {
	return Update[T]{value: v, replace: true}
}

// Apply returns an Update that computes the next value from the previous
// one. Several Apply updates in one batch compose.
func Apply[T any](fn func(T) T) Update[T] {
	return Update[T]{fn: fn}
}

func reduceValue[T any](prev T, u Update[T]) (T, error) {
	if u.replace {
		return u.value, nil
	}
	if u.fn == nil {
		return prev, ErrEmptyUpdate
	}
	return u.fn(prev), nil
}

// Value is a single get/set cell built from a Store and a two-branch
// reducer.
type Value[T any] struct {
	*Store[T, Update[T]]
}

// NewValue builds a Value from a plain or lazy initializer.
func NewValue[T any](init Initializer[T], opts ...Option) *Value[T] {
	return &Value[T]{New(reduceValue[T], init, opts...)}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.State()
}

// Set replaces the value as its own unit of work.
func (v *Value[T]) Set(next T) error {
	return v.Dispatch(Set(next))
}

// Update applies fn to the current value as its own unit of work.
func (v *Value[T]) Update(fn func(T) T) error {
	return v.Dispatch(Apply(fn))
}
