package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stickerboard/internal/logtail"
)

const activityLines = 300

// activity is the log overlay. Failures the editor only logs show up here.
type activity struct {
	open     bool
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
}

type activityLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Read(path, activityLines)
		return activityLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) openActivity() tea.Cmd {
	m.activity.open = true
	m.activity.viewport = viewport.New(max(m.width-6, 10), max(m.height-6, 3))
	if m.logPath == "" {
		m.activity.err = errors.New("no log file configured")
		m.refreshActivity()
		return nil
	}
	return loadActivityCmd(m.logPath)
}

func (m *Model) refreshActivity() {
	styles := m.theme.Styles()
	var b strings.Builder
	switch {
	case m.activity.err != nil:
		b.WriteString(styles.DangerText.Render(m.activity.err.Error()))
	case len(m.activity.entries) == 0:
		b.WriteString(styles.FaintText.Render("nothing logged yet"))
	}
	for i, e := range m.activity.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.formatEntry(e))
	}
	m.activity.viewport.SetContent(b.String())
	m.activity.viewport.GotoBottom()
}

func (m Model) formatEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Level == "" {
		return styles.MutedText.Render(e.Raw)
	}
	level := styles.MutedText
	switch e.Level {
	case "error", "fatal", "panic":
		level = styles.DangerText
	case "warning":
		level = styles.WarningText
	case "info":
		level = styles.SuccessText
	}
	parts := []string{
		styles.FaintText.Render(e.Time),
		level.Render(fmt.Sprintf("%-5.5s", strings.ToUpper(e.Level))),
		styles.Text.Render(e.Message),
	}
	if fields := e.FieldString(); fields != "" {
		parts = append(parts, styles.MutedText.Render(fields))
	}
	return strings.Join(parts, " ")
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel, m.keys.Activity, m.keys.Quit):
		m.activity.open = false
		return m, nil
	}
	var cmd tea.Cmd
	m.activity.viewport, cmd = m.activity.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Activity") + "  " +
		styles.FaintText.Render(truncateMiddle(m.logPath, max(m.width-20, 10)))
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.activity.viewport.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
			Padding(0, 1).
			Render(content))
}
