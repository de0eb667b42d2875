package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/five82/trolley/internal/cart"
	"github.com/five82/trolley/internal/catalog"
	"github.com/five82/trolley/internal/config"
	"github.com/five82/trolley/internal/counter"
	"github.com/five82/trolley/internal/kv"
	"github.com/five82/trolley/internal/replay"
	"github.com/five82/trolley/internal/state"
	"github.com/five82/trolley/internal/ui"
)

// Keys under which store snapshots are persisted.
const (
	keyCart  = "cart"
	keyCount = "count"
	keyTheme = "theme"
)

// Options configure the trolley application.
type Options struct {
	ConfigPath string
	Replay     bool      // read actions from Input even when it is a terminal
	Input      io.Reader // nil uses os.Stdin
	Output     io.Writer // nil uses os.Stdout; receives the replay snapshot
}

// Run boots trolley until the UI exits, the replay input is exhausted, or
// the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	products := catalog.Default()
	if cfg.CatalogPath != "" {
		products, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}

	logger, closeLog, err := openLogger(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	db, err := kv.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("close store failed", "error", err)
		}
	}()

	// Every store is built before deciding how to drive them.
	stores := newStores(db, cfg.Theme, logger)

	saveCtx, stopSaving := context.WithCancel(ctx)
	saver := newPersister(db, logger, defaultRetryInterval)
	saver.Start(saveCtx)
	defer func() {
		stopSaving()
		saver.Wait()
	}()

	unsubscribe := stores.persist(saver, logger)
	defer unsubscribe()

	if opts.Replay || !interactive(opts.Input) {
		logger.Info("starting replay")
		return runReplay(opts.Input, opts.Output, stores.cart, logger)
	}

	logger.Info("starting ui", "theme", stores.theme.Get(), "products", len(products))
	return ui.Run(ui.Options{
		Context: ctx,
		Cart:    stores.cart,
		Counter: stores.counter,
		Tally:   stores.tally,
		Theme:   stores.theme,
		Catalog: products,
		LogPath: cfg.LogPath(),
		Logger:  logger,
	})
}

// stores holds every state store the application drives.
type stores struct {
	cart    *cart.Store
	counter *counter.Store
	tally   *state.Value[int]
	theme   *state.Value[string]
}

func newStores(g kv.Getter, fallbackTheme string, logger *slog.Logger) stores {
	named := func(name string) []state.Option {
		return []state.Option{state.WithLogger(logger), state.WithName(name)}
	}
	return stores{
		cart:    cart.NewStore(cart.Seed(g, keyCart, logger), named("cart")...),
		counter: counter.NewStore(counter.Seed(g, keyCount, counter.InitialCount, logger), named("counter")...),
		tally:   state.NewValue(state.Initial(0), named("tally")...),
		theme:   state.NewValue(themeSeed(g, fallbackTheme, logger), named("theme")...),
	}
}

// themeSeed restores the last theme, falling back to the configured one.
func themeSeed(g kv.Getter, fallback string, logger *slog.Logger) state.Initializer[string] {
	return state.Lazy(func() string {
		name, err := g.Get(keyTheme)
		if err != nil {
			if !errors.Is(err, kv.ErrNotFound) {
				logger.Warn("theme seed read failed", "error", err)
			}
			return fallback
		}
		if name = strings.TrimSpace(name); name == "" {
			return fallback
		}
		return name
	})
}

// persist subscribes savers for the cart, the counter and the theme. The
// tally is not persisted.
func (s stores) persist(p *persister, logger *slog.Logger) (unsubscribe func()) {
	unsubs := []func(){
		s.cart.Subscribe(func(snap cart.Snapshot) {
			raw, err := cart.Encode(snap)
			if err != nil {
				logger.Error("encode cart failed", "error", err)
				return
			}
			p.Queue(keyCart, raw)
		}),
		s.counter.Subscribe(func(n int) {
			p.Queue(keyCount, counter.Encode(n))
		}),
		s.theme.Subscribe(func(name string) {
			p.Queue(keyTheme, name)
		}),
	}
	return func() {
		for _, fn := range unsubs {
			fn()
		}
	}
}

func runReplay(in io.Reader, out io.Writer, store *cart.Store, logger *slog.Logger) error {
	res, err := replay.Run(in, store)
	logger.Info("replay finished", "lines", res.Lines, "actions", res.Actions, "batches", res.Batches)

	// The last good snapshot is written even when a line was rejected.
	if werr := replay.WriteSnapshot(out, store.State().Clone()); werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// interactive reports whether r is a terminal.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openLogger returns a JSON logger appending to path. The terminal belongs
// to the UI, so nothing is logged to stderr.
func openLogger(path string, level slog.Level) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, f.Close, nil
}
