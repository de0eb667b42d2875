package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/trolley/internal/cart"
	"github.com/five82/trolley/internal/counter"
	"github.com/five82/trolley/internal/kv"
	"github.com/five82/trolley/internal/state"
)

type mapGetter map[string]string

func (m mapGetter) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

// setupDataDir points the config at an empty temp directory.
func setupDataDir(t *testing.T) (dataDir, configPath string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TROLLEY_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("TROLLEY_THEME", "")
	t.Setenv("TROLLEY_CATALOG", "")
	t.Setenv("TROLLEY_LOG_LEVEL", "debug")
	return filepath.Join(dir, "data"), filepath.Join(dir, "missing.toml")
}

func replayRun(t *testing.T, configPath, input string) (cart.Snapshot, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: configPath,
		Input:      strings.NewReader(input),
		Output:     &out,
	})
	var snap cart.Snapshot
	if out.Len() > 0 {
		if jerr := json.Unmarshal(out.Bytes(), &snap); jerr != nil {
			t.Fatalf("decode output %q: %v", out.String(), jerr)
		}
	}
	return snap, err
}

func TestRun_ReplayPersistsBetweenRuns(t *testing.T) {
	dataDir, configPath := setupDataDir(t)

	input := strings.Join([]string{
		`{"type":"ADD_ITEM","payload":{"id":1,"name":"React Course","price":49.99}}`,
		`[{"type":"ADD_ITEM","payload":{"id":1,"name":"React Course","price":49.99}},{"type":"ADD_ITEM","payload":{"id":"2","name":"Node.js Course","price":39.99}}]`,
	}, "\n")
	first, err := replayRun(t, configPath, input)
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if first.TotalItems != 3 || len(first.Items) != 2 {
		t.Fatalf("first snapshot = %+v, want 3 items on 2 lines", first)
	}

	second, err := replayRun(t, configPath, "")
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("restored snapshot (-first +second):\n%s", diff)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "trolley.log")); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestRun_ReplayStopsAtRejectedLine(t *testing.T) {
	_, configPath := setupDataDir(t)

	input := strings.Join([]string{
		`{"type":"ADD_ITEM","payload":{"id":1,"name":"React Course","price":49.99}}`,
		`{"type":"UPDATE_QUANTITY","payload":{"id":1,"quantity":-1}}`,
		`{"type":"CLEAR_CART"}`,
	}, "\n")
	snap, err := replayRun(t, configPath, input)
	if !errors.Is(err, cart.ErrInvalidAction) {
		t.Fatalf("Run error = %v, want %v", err, cart.ErrInvalidAction)
	}
	if snap.TotalItems != 1 {
		t.Fatalf("TotalItems = %d, want 1 (last good snapshot)", snap.TotalItems)
	}
}

func TestRun_BadCatalog(t *testing.T) {
	_, configPath := setupDataDir(t)
	t.Setenv("TROLLEY_CATALOG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := replayRun(t, configPath, "")
	if err == nil || !strings.Contains(err.Error(), "load catalog") {
		t.Fatalf("Run error = %v, want load catalog error", err)
	}
}

func TestNewStores_SeedsFromStorage(t *testing.T) {
	g := mapGetter{keyCount: "41", keyTheme: "Slate"}
	s := newStores(g, "Nightfox", quietLogger())

	if got := s.counter.State(); got != 41 {
		t.Fatalf("counter = %d, want 41", got)
	}
	if got := s.theme.Get(); got != "Slate" {
		t.Fatalf("theme = %q, want Slate", got)
	}
	if got := s.cart.State(); !got.IsEmpty() {
		t.Fatalf("cart = %+v, want empty", got)
	}
	if got := s.tally.Get(); got != 0 {
		t.Fatalf("tally = %d, want 0", got)
	}
}

func TestNewStores_ThemeFallback(t *testing.T) {
	for name, g := range map[string]mapGetter{
		"missing": {},
		"blank":   {keyTheme: "  "},
	} {
		t.Run(name, func(t *testing.T) {
			s := newStores(g, "Kanagawa", quietLogger())
			if got := s.theme.Get(); got != "Kanagawa" {
				t.Fatalf("theme = %q, want Kanagawa", got)
			}
		})
	}
}

func TestPersist_QueuesFlushedSnapshots(t *testing.T) {
	s := newStores(mapGetter{}, "Nightfox", quietLogger())
	w := &memWriter{}
	p := newPersister(w, quietLogger(), 0)
	unsubscribe := s.persist(p, quietLogger())

	err := s.cart.Dispatch(cart.AddItem{Item: cart.Item{ID: "1", Name: "React Course", Price: 49.99}})
	if err != nil {
		t.Fatalf("cart Dispatch returned error: %v", err)
	}
	if err := s.counter.Dispatch(counter.Increment); err != nil {
		t.Fatalf("counter Dispatch returned error: %v", err)
	}
	if err := s.theme.Set("Slate"); err != nil {
		t.Fatalf("theme Set returned error: %v", err)
	}
	if err := s.tally.Dispatch(state.Set(5)); err != nil {
		t.Fatalf("tally Dispatch returned error: %v", err)
	}
	if err := p.flush(); err != nil {
		t.Fatalf("flush returned error: %v", err)
	}

	raw, _ := w.get(keyCart)
	restored, err := cart.Decode(raw)
	if err != nil {
		t.Fatalf("Decode persisted cart: %v", err)
	}
	if diff := cmp.Diff(s.cart.State(), restored); diff != "" {
		t.Fatalf("persisted cart (-live +saved):\n%s", diff)
	}
	if v, _ := w.get(keyCount); v != "1" {
		t.Fatalf("count = %q, want 1", v)
	}
	if v, _ := w.get(keyTheme); v != "Slate" {
		t.Fatalf("theme = %q, want Slate", v)
	}
	if w.writes != 3 {
		t.Fatalf("writes = %d, want 3 (tally is not persisted)", w.writes)
	}

	unsubscribe()
	unsubscribe()
	if err := s.counter.Dispatch(counter.Increment); err != nil {
		t.Fatalf("counter Dispatch returned error: %v", err)
	}
	if err := p.flush(); err != nil {
		t.Fatalf("flush returned error: %v", err)
	}
	if w.writes != 3 {
		t.Fatalf("writes = %d after unsubscribe, want 3", w.writes)
	}
}

func TestInteractive(t *testing.T) {
	if interactive(strings.NewReader("")) {
		t.Fatalf("interactive(strings.Reader) = true, want false")
	}
	f, err := os.CreateTemp(t.TempDir(), "input")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if interactive(f) {
		t.Fatalf("interactive(regular file) = true, want false")
	}
}
