package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ViewShop   key.Binding
	ViewCount  key.Binding
	ViewLog    key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Shop
	Add         key.Binding
	AddAll      key.Binding
	More        key.Binding
	Less        key.Binding
	Remove      key.Binding
	SetQuantity key.Binding
	Clear       key.Binding

	// Counter
	Increment   key.Binding
	Decrement   key.Binding
	Reset       key.Binding
	BatchUpdate key.Binding
	StaleUpdate key.Binding
	ZeroTally   key.Binding

	// Activity
	Refresh key.Binding

	// Prompt
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		ViewShop: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Shop"),
		),
		ViewCount: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Counter"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Activity"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),

		Add: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "Add to cart"),
		),
		AddAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Add every product"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Increase quantity"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Decrease quantity"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove item"),
		),
		SetQuantity: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Set quantity"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear cart"),
		),

		Increment: key.NewBinding(
			key.WithKeys("i", "+"),
			key.WithHelp("i", "Increment"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("d", "-"),
			key.WithHelp("d", "Decrement"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset"),
		),
		BatchUpdate: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Batch +1 +5 +10"),
		),
		StaleUpdate: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Batch stale sets"),
		),
		ZeroTally: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Zero tally"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload activity"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewShop, k.ViewCount, k.ViewLog, k.Tab, k.Up, k.Down},
		{k.Add, k.AddAll, k.More, k.Less, k.Remove, k.SetQuantity, k.Clear},
		{k.Increment, k.Decrement, k.Reset, k.BatchUpdate, k.StaleUpdate, k.ZeroTally},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
