package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, outside (0, %v]", failures, baseInterval, got, maxBackoff)
		}
	}
}

type memWriter struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	fail   int // number of Set calls to fail before succeeding
}

func (w *memWriter) Set(key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail > 0 {
		w.fail--
		return errors.New("disk full")
	}
	if w.values == nil {
		w.values = make(map[string]string)
	}
	w.values[key] = value
	w.writes++
	return nil
}

func (w *memWriter) get(key string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.values[key]
	return v, ok
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPersister_KeepsNewestValuePerKey(t *testing.T) {
	w := &memWriter{}
	p := newPersister(w, quietLogger(), time.Millisecond)

	// Nothing is running yet, so these coalesce.
	p.Queue("count", "1")
	p.Queue("count", "2")
	p.Queue("theme", "Slate")

	if err := p.flush(); err != nil {
		t.Fatalf("flush returned error: %v", err)
	}
	if v, _ := w.get("count"); v != "2" {
		t.Fatalf("count = %q, want 2", v)
	}
	if v, _ := w.get("theme"); v != "Slate" {
		t.Fatalf("theme = %q, want Slate", v)
	}
	if w.writes != 2 {
		t.Fatalf("writes = %d, want 2", w.writes)
	}
}

func TestPersister_FailedWriteIsRequeued(t *testing.T) {
	w := &memWriter{fail: 1}
	p := newPersister(w, quietLogger(), time.Millisecond)

	p.Queue("cart", "[]")
	if err := p.flush(); err == nil {
		t.Fatalf("flush returned nil, want error")
	}
	if _, ok := w.get("cart"); ok {
		t.Fatalf("value written despite failure")
	}
	if err := p.flush(); err != nil {
		t.Fatalf("second flush returned error: %v", err)
	}
	if v, _ := w.get("cart"); v != "[]" {
		t.Fatalf("cart = %q, want []", v)
	}
}

func TestPersister_FinalFlushOnCancel(t *testing.T) {
	w := &memWriter{}
	p := newPersister(w, quietLogger(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	p.Queue("count", "7")
	cancel()
	p.Wait()

	if v, _ := w.get("count"); v != "7" {
		t.Fatalf("count = %q, want 7", v)
	}
}

func TestPersister_RetriesInBackground(t *testing.T) {
	w := &memWriter{fail: 2}
	p := newPersister(w, quietLogger(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		p.Wait()
	}()
	p.Start(ctx)
	p.Queue("count", "3")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, ok := w.get("count"); ok && v == "3" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("value not written after retries")
}
