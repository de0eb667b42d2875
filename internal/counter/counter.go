// Package counter is the minimal reducer: an integer moved by three tagged
// actions.
package counter

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/five82/trolley/internal/kv"
	"github.com/five82/trolley/internal/state"
)

// Action is a counter action tag.
type Action string

const (
	Increment Action = "increment"
	Decrement Action = "decrement"
	Reset     Action = "reset"
)

// InitialCount is the value Reset returns to.
const InitialCount = 0

// Store is the counter's state store.
type Store = state.Store[int, Action]

// Reduce applies action to count. Unknown tags leave count unchanged.
func Reduce(count int, action Action) (int, error) {
	switch action {
	case Increment:
		return count + 1, nil
	case Decrement:
		return count - 1, nil
	case Reset:
		return InitialCount, nil
	default:
		return count, nil
	}
}

// NewStore builds a counter store around Reduce.
func NewStore(init state.Initializer[int], opts ...state.Option) *Store {
	return state.New(Reduce, init, opts...)
}

// Seed returns a lazy initializer that reads the count persisted under key
// and falls back to fallback when it is absent or not an integer.
func Seed(g kv.Getter, key string, fallback int, logger *slog.Logger) state.Initializer[int] {
	if logger == nil {
		logger = slog.Default()
	}
	return state.Lazy(func() int {
		raw, err := g.Get(key)
		if err != nil {
			if errors.Is(err, kv.ErrNotFound) {
				logger.Info("no saved count, using initial value", "key", key, "initial", fallback)
			} else {
				logger.Warn("count seed read failed", "key", key, "error", err)
			}
			return fallback
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			logger.Warn("discarding saved count", "key", key, "value", raw, "error", err)
			return fallback
		}
		logger.Info("found saved count", "key", key, "count", n)
		return n
	})
}

// Encode renders count for persistence.
func Encode(count int) string {
	return strconv.Itoa(count)
}
