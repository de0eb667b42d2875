package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo and the cart summary.
func (m Model) renderHeader() string {
	styles := m.theme().Styles()

	logo := styles.Logo.Render("trolley")

	snap := m.snapshot()
	summary := "cart empty"
	if !snap.IsEmpty() {
		summary = fmt.Sprintf("%d %s | %s", snap.TotalItems,
			plural(snap.TotalItems, "item", "items"),
			formatMoney(snap.TotalAmount))
	}
	right := styles.MutedText.Render(summary + " | " + m.theme().Name)

	gap := maxInt(m.width-lipgloss.Width(logo)-lipgloss.Width(right)-2, 1)
	return styles.Header.Width(m.width).Render(logo + strings.Repeat(" ", gap) + right)
}

// renderCommandBar renders the view tabs.
func (m Model) renderCommandBar() string {
	styles := m.theme().Styles()

	tabs := []struct {
		binding key.Binding
		view    View
	}{
		{m.keys.ViewShop, ViewShop},
		{m.keys.ViewCount, ViewCounter},
		{m.keys.ViewLog, ViewActivity},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("<%s> %s", tab.binding.Help().Key, tab.view)
		if tab.view == m.currentView {
			parts = append(parts, styles.AccentText.Bold(true).Render(label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}
	return " " + strings.Join(parts, "  ")
}

// renderFooter renders the quantity prompt, the last status, or key hints.
func (m Model) renderFooter() string {
	styles := m.theme().Styles()

	switch {
	case m.prompting:
		return styles.Footer.Width(m.width).Render(
			truncate(m.promptItem.Name, 24) + "  " + m.quantityInput.View())
	case m.status != "" && m.statusErr:
		return styles.Footer.Width(m.width).Render(styles.DangerText.Render(m.status))
	case m.status != "":
		return styles.Footer.Width(m.width).Render(styles.SuccessText.Render(m.status))
	default:
		return styles.Footer.Width(m.width).Render(m.renderHints(m.keys.ShortHelp()...))
	}
}

// renderHints renders bindings as "key desc" pairs on one line.
func (m Model) renderHints(bindings ...key.Binding) string {
	styles := m.theme().Styles()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.WarningText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
