package state

import (
	"fmt"
	"log/slog"
	"sync"
)

// Reducer computes the next snapshot from the current snapshot and an action.
// It must not mutate its inputs. A non-nil error rejects the action and
// abandons the batch it belongs to.
type Reducer[S, A any] func(S, A) (S, error)

// Initializer produces the first snapshot of a Store. It holds either a plain
// value or a function that is invoked once, when the Store is built.
type Initializer[S any] struct {
	value S
	fn    func() S
}

// Initial returns an Initializer for a plain initial snapshot.
func Initial[S any](v S) Initializer[S] {
	return Initializer[S]{value: v}
}

// Lazy returns an Initializer whose snapshot is computed by fn. The Store
// calls fn exactly once from New and never again.
func Lazy[S any](fn func() S) Initializer[S] {
	return Initializer[S]{fn: fn}
}

func (i Initializer[S]) resolve() S {
	if i.fn != nil {
		return i.fn()
	}
	return i.value
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *slog.Logger
	name   string
}

// WithLogger sets the logger used for flush and rejection records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName labels the store in log records.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

type listener[S any] struct {
	id uint64
	fn func(S)
}

// notification is one completed flush waiting to be delivered.
type notification[S any] struct {
	state     S
	listeners []listener[S]
}

// Store owns the current snapshot and applies dispatched actions to it in
// batches.
type Store[S, A any] struct {
	reducer Reducer[S, A]
	logger  *slog.Logger

	mu        sync.Mutex
	state     S
	flushes   uint64
	nextID    uint64
	listeners []listener[S]

	// Flushes waiting for delivery, oldest first. notifying is set while
	// one goroutine drains them.
	pending   []notification[S]
	notifying bool
}

// New builds a Store. The initializer is resolved here, once.
func New[S, A any](reducer Reducer[S, A], init Initializer[S], opts ...Option) *Store[S, A] {
	if reducer == nil {
		panic("state: New called with nil reducer")
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if o.name != "" {
		logger = logger.With(slog.String("store", o.name))
	}
	return &Store[S, A]{
		reducer: reducer,
		logger:  logger,
		state:   init.resolve(),
	}
}

// State returns the current snapshot. The result shares memory with the
// store (slices and maps are not copied) and must not be modified; take a
// copy before editing it.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Flushes reports how many batches have been applied.
func (s *Store[S, A]) Flushes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Dispatch applies a single action as its own unit of work and notifies
// subscribers. The returned error is the reducer's rejection, if any; the
// store keeps its previous snapshot in that case.
func (s *Store[S, A]) Dispatch(action A) error {
	return s.flush([]A{action})
}

// Batch runs fn as one unit of work. Actions passed to dispatch are queued
// while fn runs and applied afterwards in FIFO order, each reducer call
// consuming the previous call's output. Subscribers are notified once with
// the final snapshot. If any action is rejected the whole batch is dropped.
//
// dispatch must not be called after fn returns.
func (s *Store[S, A]) Batch(fn func(dispatch func(A))) error {
	var queue []A
	closed := false
	fn(func(action A) {
		if closed {
			panic("state: dispatch called after its batch was flushed")
		}
		queue = append(queue, action)
	})
	closed = true
	return s.flush(queue)
}

// Subscribe registers fn to receive the snapshot after every completed
// flush. Snapshots arrive in flush order, so the last one a listener sees
// is the one State returns. The returned function removes the
// subscription; calling it more than once has no effect.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[S]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store[S, A]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Store[S, A]) flush(queue []A) error {
	if len(queue) == 0 {
		return nil
	}

	count, err := s.apply(queue)
	if err != nil {
		s.logger.Warn("batch rejected", "actions", len(queue), "error", err)
		return err
	}
	s.logger.Debug("batch flushed", "actions", len(queue), "flush", count)

	s.notify()
	return nil
}

// apply folds queue over the current snapshot and, on success, stores the
// result and queues its notification.
func (s *Store[S, A]) apply(queue []A) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	for i, action := range queue {
		var err error
		next, err = s.reducer(next, action)
		if err != nil {
			return 0, fmt.Errorf("action %d of %d: %w", i+1, len(queue), err)
		}
	}

	s.state = next
	s.flushes++
	listeners := make([]listener[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.pending = append(s.pending, notification[S]{state: next, listeners: listeners})
	return s.flushes, nil
}

// notify delivers pending notifications in flush order. Only one goroutine
// delivers at a time. A flush that finds delivery under way, including one
// started by a listener, leaves its notification to the delivering
// goroutine and returns.
func (s *Store[S, A]) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notifying {
		return
	}
	s.notifying = true
	defer func() { s.notifying = false }()

	for len(s.pending) > 0 {
		n := s.pending[0]
		s.pending[0] = notification[S]{}
		s.pending = s.pending[1:]
		s.deliver(n)
	}
}

// deliver calls the listeners of n with the lock released. s.mu must be
// held on entry; it is held again on return, even if a listener panics.
func (s *Store[S, A]) deliver(n notification[S]) {
	s.mu.Unlock()
	defer s.mu.Lock()
	for _, l := range n.listeners {
		l.fn(n.state)
	}
}
