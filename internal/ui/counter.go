package ui

import (
	"fmt"
	"strings"
)

// renderCounter renders the counter reducer and the tally value cell.
func (m Model) renderCounter() string {
	styles := m.theme().Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Counter"))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("  %d flushes", m.counter.Flushes())))
	b.WriteString("\n\n  ")
	b.WriteString(styles.WarningText.Bold(true).Render(fmt.Sprintf("%d", m.counter.State())))
	b.WriteString("\n\n")
	b.WriteString(m.renderHints(m.keys.Increment, m.keys.Decrement, m.keys.Reset))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Tally"))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("  %d flushes", m.tally.Flushes())))
	b.WriteString("\n\n  ")
	b.WriteString(styles.WarningText.Bold(true).Render(fmt.Sprintf("%d", m.tally.Get())))
	b.WriteString("\n\n")
	b.WriteString(m.renderHints(m.keys.BatchUpdate, m.keys.StaleUpdate, m.keys.ZeroTally))

	return m.pane(true, m.width, m.contentHeight(), b.String())
}
