package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stickerboard/internal/document"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptBackgroundURL
	promptEmbedFile
	promptNewPalette
	promptRenamePalette
	promptAddGlyphs
)

func (k promptKind) title() string {
	switch k {
	case promptBackgroundURL:
		return "Background URL"
	case promptEmbedFile:
		return "Embed background image"
	case promptNewPalette:
		return "New palette"
	case promptRenamePalette:
		return "Rename palette"
	case promptAddGlyphs:
		return "Add glyphs"
	default:
		return ""
	}
}

func (k promptKind) placeholder() string {
	switch k {
	case promptBackgroundURL:
		return "https://… or file path, empty for blank"
	case promptEmbedFile:
		return "path to a png, jpeg, gif, webp or bmp"
	case promptNewPalette, promptRenamePalette:
		return "palette name"
	case promptAddGlyphs:
		return "paste emoji"
	default:
		return ""
	}
}

type prompt struct {
	kind  promptKind
	input textinput.Model
}

func (p prompt) active() bool {
	return p.kind != promptNone
}

// openPrompt shows a single-line input of kind prefilled with value.
func (m *Model) openPrompt(kind promptKind, value string) tea.Cmd {
	ti := textinput.New()
	ti.Placeholder = kind.placeholder()
	ti.CharLimit = 2048
	ti.Width = 48
	ti.SetValue(value)
	m.prompt = prompt{kind: kind, input: ti}
	return m.prompt.input.Focus()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.prompt = prompt{}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		kind, value := m.prompt.kind, strings.TrimSpace(m.prompt.input.Value())
		m.prompt = prompt{}
		return m, m.commitPrompt(kind, value)
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m *Model) commitPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptBackgroundURL:
		if value == "" {
			m.editor.SetBackground(document.Blank())
		} else {
			m.editor.SetBackground(document.URL(value))
		}
	case promptEmbedFile:
		if value != "" {
			return loadFileCmd(value)
		}
	case promptNewPalette:
		if value != "" {
			m.palettes.Insert(value, "", m.paletteIdx)
			m.glyphIdx = 0
			m.savePrefs()
		}
	case promptRenamePalette:
		if value != "" {
			m.palettes.Rename(m.paletteIdx, value)
		}
	case promptAddGlyphs:
		if value != "" {
			m.palettes.AddEmojis(m.paletteIdx, value)
			m.glyphIdx = 0
		}
	}
	return nil
}

func (m Model) renderPrompt() string {
	styles := m.theme.Styles()
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.AccentText.Bold(true).Render(m.prompt.kind.title()),
		"",
		m.prompt.input.View(),
		"",
		styles.FaintText.Render("enter confirm · esc cancel"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.Modal.Width(56).Render(content))
}
