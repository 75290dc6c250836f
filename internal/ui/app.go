package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/stickerboard/internal/document"
	"github.com/five82/stickerboard/internal/editor"
	"github.com/five82/stickerboard/internal/palette"
	"github.com/five82/stickerboard/internal/prefs"
)

const (
	// Document units covered by one terminal cell.
	unitsPerColumn = 10
	unitsPerRow    = 20

	growFactor   = 1.25
	shrinkFactor = 0.8
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Editor    *editor.Manager
	Palettes  *palette.Store
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	Logger    logrus.FieldLogger
}

// Model is the root Bubble Tea model. It is the only goroutine that touches
// the editor.
type Model struct {
	editor    *editor.Manager
	palettes  *palette.Store
	log       logrus.FieldLogger
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	keys      keyMap

	theme  Theme
	width  int
	height int
	ready  bool

	focus      int // sticker ID, 0 when nothing is focused
	paletteIdx int
	glyphIdx   int

	showHelp bool
	prompt   prompt
	activity activity
	notice   string
}

// New creates the board model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	p := opts.Prefs
	if p.Theme == "" && p.StickerSize == 0 {
		p = prefs.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		editor:     opts.Editor,
		palettes:   opts.Palettes,
		log:        logger.WithField("component", "ui"),
		prefs:      p,
		prefsPath:  prefsPath,
		logPath:    opts.LogPath,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(p.Theme),
		paletteIdx: p.PaletteIndex,
	}
	if n := m.palettes.Len(); m.paletteIdx >= n {
		m.paletteIdx = max(n-1, 0)
	}
	m.ensureFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.editor.Events())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case editorEventMsg:
		m.editor.Handle(msg.event)
		return m, waitForEvent(m.editor.Events())

	case embedLoadedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("path", msg.path).Warn("embed background failed")
			m.notice = "cannot read " + msg.path
			return m, nil
		}
		m.editor.SetBackground(document.ImageData(msg.data))
		return m, nil

	case activityLoadedMsg:
		m.activity.entries, m.activity.err = msg.entries, msg.err
		m.refreshActivity()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt.active() {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.prompt.active() {
		return m.renderPrompt()
	}
	if m.activity.open {
		return m.renderActivity()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCanvas(m.width, m.canvasHeight()))
	b.WriteString("\n")
	b.WriteString(m.renderPaletteBar())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) canvasHeight() int {
	return max(m.height-3, 1)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.active() {
		return m.handlePromptKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.activity.open {
		return m.handleActivityKey(msg)
	}
	m.notice = ""

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.showHelp = true
	case key.Matches(msg, k.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, k.Cancel):
		m.editor.ClearSelection()
	case key.Matches(msg, k.Activity):
		return m, m.openActivity()

	case key.Matches(msg, k.NextSticker):
		m.cycleFocus(1)
	case key.Matches(msg, k.PrevSticker):
		m.cycleFocus(-1)
	case key.Matches(msg, k.Up):
		m.move(0, -unitsPerRow)
	case key.Matches(msg, k.Down):
		m.move(0, unitsPerRow)
	case key.Matches(msg, k.Left):
		m.move(-unitsPerColumn, 0)
	case key.Matches(msg, k.Right):
		m.move(unitsPerColumn, 0)
	case key.Matches(msg, k.Grow):
		m.scale(growFactor)
	case key.Matches(msg, k.Shrink):
		m.scale(shrinkFactor)
	case key.Matches(msg, k.ToggleSelect):
		if m.focus != 0 {
			m.editor.ToggleSelection(m.focus)
		}
	case key.Matches(msg, k.RemoveSelected):
		m.editor.RemoveSelected()
		m.ensureFocus()
	case key.Matches(msg, k.AddSticker):
		m.addSticker()
	case key.Matches(msg, k.PrevGlyph):
		m.cycleGlyph(-1)
	case key.Matches(msg, k.NextGlyph):
		m.cycleGlyph(1)
	case key.Matches(msg, k.SetBackground):
		return m, m.openPrompt(promptBackgroundURL, m.editor.Background().Address())
	case key.Matches(msg, k.EmbedBackground):
		return m, m.openPrompt(promptEmbedFile, "")

	case key.Matches(msg, k.NextPalette):
		m.cyclePalette(1)
	case key.Matches(msg, k.PrevPalette):
		m.cyclePalette(-1)
	case key.Matches(msg, k.NewPalette):
		return m, m.openPrompt(promptNewPalette, "")
	case key.Matches(msg, k.RenamePalette):
		return m, m.openPrompt(promptRenamePalette, m.currentPalette().Name)
	case key.Matches(msg, k.AddGlyphs):
		return m, m.openPrompt(promptAddGlyphs, "")
	case key.Matches(msg, k.RemoveGlyph):
		if g := m.currentGlyph(); g != "" {
			m.palettes.RemoveEmoji(m.paletteIdx, g)
			m.clampGlyph()
		}
	case key.Matches(msg, k.RemovePalette):
		m.paletteIdx = max(m.palettes.Remove(m.paletteIdx), 0)
		m.glyphIdx = 0
		m.savePrefs()
	}
	return m, nil
}

// move offsets the selection, or the focused sticker when nothing is
// selected.
func (m *Model) move(dx, dy int) {
	if len(m.editor.Selection()) > 0 {
		m.editor.MoveSelected(dx, dy)
		return
	}
	if m.focus != 0 {
		m.editor.MoveSticker(m.focus, dx, dy)
	}
}

func (m *Model) scale(factor float64) {
	if len(m.editor.Selection()) > 0 {
		m.editor.ScaleSelected(factor)
		return
	}
	if m.focus != 0 {
		m.editor.ScaleSticker(m.focus, factor)
	}
}

func (m *Model) addSticker() {
	glyph := m.currentGlyph()
	if glyph == "" {
		m.notice = "palette is empty"
		return
	}
	m.focus = m.editor.AddSticker(glyph, 0, 0, m.prefs.StickerSize)
}

// cycleFocus moves focus through the stickers in document order.
func (m *Model) cycleFocus(step int) {
	stickers := m.editor.Stickers()
	if len(stickers) == 0 {
		m.focus = 0
		return
	}
	idx := -1
	for i, s := range stickers {
		if s.ID == m.focus {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(stickers) - 1
	default:
		idx = (idx + step + len(stickers)) % len(stickers)
	}
	m.focus = stickers[idx].ID
}

// ensureFocus keeps focus on an existing sticker, falling back to the most
// recently added one.
func (m *Model) ensureFocus() {
	if _, ok := m.editor.Sticker(m.focus); ok {
		return
	}
	m.focus = 0
	if stickers := m.editor.Stickers(); len(stickers) > 0 {
		m.focus = stickers[len(stickers)-1].ID
	}
}

func (m Model) currentPalette() palette.Palette {
	return m.palettes.PaletteAt(m.paletteIdx)
}

func (m Model) currentGlyph() string {
	glyphs := m.currentPalette().Glyphs()
	if len(glyphs) == 0 {
		return ""
	}
	return glyphs[min(max(m.glyphIdx, 0), len(glyphs)-1)]
}

func (m *Model) cycleGlyph(step int) {
	n := len(m.currentPalette().Glyphs())
	if n == 0 {
		m.glyphIdx = 0
		return
	}
	m.glyphIdx = ((m.glyphIdx+step)%n + n) % n
}

func (m *Model) clampGlyph() {
	n := len(m.currentPalette().Glyphs())
	m.glyphIdx = min(m.glyphIdx, max(n-1, 0))
}

func (m *Model) cyclePalette(step int) {
	n := m.palettes.Len()
	if n == 0 {
		return
	}
	m.paletteIdx = ((m.paletteIdx+step)%n + n) % n
	m.glyphIdx = 0
	m.savePrefs()
}

func (m *Model) savePrefs() {
	m.prefs.Theme = m.theme.Name
	m.prefs.PaletteIndex = m.paletteIdx
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// Messages

type editorEventMsg struct {
	event editor.Event
}

type embedLoadedMsg struct {
	path string
	data []byte
	err  error
}

// Commands

// waitForEvent blocks until the editor reports asynchronous work.
func waitForEvent(events <-chan editor.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return editorEventMsg{event: ev}
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("read %s: %w", path, err)
		}
		return embedLoadedMsg{path: path, data: data, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(New(opts), programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
