package logtail

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trolley.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRead_KeepsLastEntries(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("Line %d", i))
	}
	path := writeLog(t, lines...)

	tests := []struct {
		name  string
		max   int
		first string
		count int
	}{
		{"none", 0, "", 0},
		{"partial", 4, "Line 7", 4},
		{"exact", 10, "Line 1", 10},
		{"more than exists", 20, "Line 1", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.max)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("len = %d, want %d", len(got), tt.count)
			}
			if tt.count > 0 && got[0].Msg != tt.first {
				t.Fatalf("first = %q, want %q", got[0].Msg, tt.first)
			}
			if tt.count > 0 && got[len(got)-1].Msg != "Line 10" {
				t.Fatalf("last = %q, want Line 10", got[len(got)-1].Msg)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Read = %v, want empty", got)
	}
}

func TestParse_SlogRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("batch flushed", "store", "cart", "actions", 3)

	e := Parse(strings.TrimSpace(buf.String()))
	if e.Level != "INFO" || e.Msg != "batch flushed" {
		t.Fatalf("Parse = %#v", e)
	}
	if e.Time.IsZero() || time.Since(e.Time) > time.Minute {
		t.Fatalf("Time = %v, want recent", e.Time)
	}
	if diff := cmp.Diff(map[string]string{"store": "cart", "actions": "3"}, e.Attrs); diff != "" {
		t.Fatalf("Attrs (-want +got):\n%s", diff)
	}
}

func TestEntry_String(t *testing.T) {
	e := Entry{
		Time:  time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Level: "WARN",
		Msg:   "batch rejected",
		Attrs: map[string]string{"store": "cart", "error": "boom"},
	}
	want := "15:04:05 WARN  batch rejected error=boom store=cart"
	if got := e.String(); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
	if got := (Entry{Msg: "plain"}).String(); got != "plain" {
		t.Fatalf("String = %q, want plain", got)
	}
}
