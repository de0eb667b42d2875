package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// writer is the write side of the key-value store.
type writer interface {
	Set(key, value string) error
}

// persister moves store snapshots to disk off the UI goroutine. Subscribers
// queue the latest encoded value per key and a background goroutine writes
// whatever is pending, so a burst of flushes costs one write per key.
type persister struct {
	kv     writer
	logger *slog.Logger
	retry  time.Duration

	mu      sync.Mutex
	pending map[string]string

	wake chan struct{}
	done chan struct{}
}

func newPersister(kv writer, logger *slog.Logger, retry time.Duration) *persister {
	if logger == nil {
		logger = slog.Default()
	}
	if retry <= 0 {
		retry = defaultRetryInterval
	}
	return &persister{
		kv:      kv,
		logger:  logger,
		retry:   retry,
		pending: make(map[string]string),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Queue records value as the next one to save under key, replacing any
// value still waiting for the same key.
func (p *persister) Queue(key, value string) {
	p.mu.Lock()
	p.pending[key] = value
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Start launches the background writer. It returns immediately. When ctx is
// cancelled the writer makes a final attempt to save what is pending and
// exits; Wait blocks until then.
func (p *persister) Start(ctx context.Context) {
	go func() {
		defer close(p.done)

		failures := 0
		var retry <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if err := p.flush(); err != nil {
					p.logger.Error("final save failed", "error", err)
				}
				return
			case <-p.wake:
				if retry != nil {
					// Backing off; the retry timer will pick this up.
					continue
				}
			case <-retry:
				retry = nil
			}

			if err := p.flush(); err != nil {
				failures++
				backoff := calculateBackoff(failures, p.retry)
				p.logger.Warn("save failed", "error", err, "failures", failures, "retry_in", backoff)
				retry = time.After(backoff)
				continue
			}
			failures = 0
		}
	}()
}

// Wait blocks until the writer started by Start has exited.
func (p *persister) Wait() {
	<-p.done
}

// flush writes every pending value. Values that fail to save are queued
// again unless a newer value arrived in the meantime.
func (p *persister) flush() error {
	p.mu.Lock()
	batch := p.pending
	p.pending = make(map[string]string)
	p.mu.Unlock()

	var errs []error
	for key, value := range batch {
		if err := p.kv.Set(key, value); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", key, err))
			p.mu.Lock()
			if _, newer := p.pending[key]; !newer {
				p.pending[key] = value
			}
			p.mu.Unlock()
			continue
		}
		p.logger.Debug("saved", "key", key, "bytes", len(value))
	}
	return errors.Join(errs...)
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures >= 16 {
		return maxBackoff
	}
	d := base << failures
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
