package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "React Course", 20, "React Course"},
		{"trimmed", "  Node  ", 10, "Node"},
		{"ellipsis", "JavaScript Bundle", 10, "JavaScr..."},
		{"tiny", "abcdef", 2, "ab"},
		{"no_limit", "abc", 0, "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Fatalf("padLeft = %q, want %q", got, "  ab")
	}
	if got := padLeft("abcdef", 4); got != "abcdef" {
		t.Fatalf("padLeft overflow = %q, want unchanged", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney(129.97); got != "$129.97" {
		t.Fatalf("formatMoney = %q, want $129.97", got)
	}
	if got := formatMoney(0); got != "$0.00" {
		t.Fatalf("formatMoney(0) = %q, want $0.00", got)
	}
}

func TestClampIndex(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 0, 0},
		{-1, 3, 0},
		{5, 3, 2},
		{1, 3, 1},
	}
	for _, tc := range cases {
		if got := clampIndex(tc.i, tc.n); got != tc.want {
			t.Fatalf("clampIndex(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestFormatRowWidth(t *testing.T) {
	row := formatRow("A very long product name indeed", "x2", "$99.98", 40)
	if got := len([]rune(row)); got != 40 {
		t.Fatalf("formatRow width = %d, want 40", got)
	}
}
