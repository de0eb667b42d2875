package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trolley/internal/logtail"
)

// renderActivity renders the tail of the application log.
func (m Model) renderActivity() string {
	styles := m.theme().Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Activity"))
	if m.logPath != "" {
		b.WriteString(styles.FaintText.Render("  " + truncate(m.logPath, maxInt(m.width-16, 8))))
	}
	b.WriteString("\n")
	b.WriteString(m.activityViewport.View())

	return m.pane(true, m.width, m.contentHeight(), b.String())
}

// updateActivityViewport replaces the activity content and follows the
// newest entry.
func (m *Model) updateActivityViewport() {
	styles := m.theme().Styles()

	switch {
	case m.activityErr != nil:
		m.activityViewport.SetContent(styles.DangerText.Render("Failed to read log: " + m.activityErr.Error()))
		return
	case m.logPath == "":
		m.activityViewport.SetContent(styles.FaintText.Render("Logging to a file is disabled."))
		return
	case len(m.activity) == 0:
		m.activityViewport.SetContent(styles.FaintText.Render("No activity yet."))
		return
	}

	lines := make([]string, 0, len(m.activity))
	for _, entry := range m.activity {
		lines = append(lines, m.levelStyle(entry).Render(entry.String()))
	}
	m.activityViewport.SetContent(strings.Join(lines, "\n"))
	m.activityViewport.GotoBottom()
}

func (m Model) levelStyle(entry logtail.Entry) lipgloss.Style {
	styles := m.theme().Styles()
	switch strings.ToUpper(entry.Level) {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}
