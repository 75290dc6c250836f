package ui

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/stickerboard/internal/document"
	"github.com/five82/stickerboard/internal/editor"
	"github.com/five82/stickerboard/internal/palette"
	"github.com/five82/stickerboard/internal/prefs"
	"github.com/five82/stickerboard/internal/storage"
)

type stubFetcher struct {
	data  []byte
	block bool
}

func (f stubFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.data, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestModel(t *testing.T, fetcher stubFetcher) (Model, string) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	kv := storage.NewMemory()

	ed, err := editor.New(context.Background(), editor.Options{Storage: kv, Fetcher: fetcher, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ed.Close() })

	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Editor:    ed,
		Palettes:  palette.Open(context.Background(), kv, "Default", logger),
		Prefs:     prefs.Default(),
		PrefsPath: prefsPath,
		Logger:    logger,
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, prefsPath
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	right = tea.KeyMsg{Type: tea.KeyRight}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func focused(t *testing.T, m Model) document.Sticker {
	t.Helper()
	s, ok := m.editor.Sticker(m.focus)
	require.True(t, ok, "no focused sticker")
	return s
}

func TestModel_PlaceMoveScaleRemove(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})

	m = send(t, m, enter)
	s := focused(t, m)
	assert.Equal(t, document.Sticker{ID: 1, Text: "🐶", X: 0, Y: 0, Size: 40}, s)

	m = send(t, m, right, right, down)
	s = focused(t, m)
	assert.Equal(t, 2*unitsPerColumn, s.X)
	assert.Equal(t, unitsPerRow, s.Y)

	m = send(t, m, runes("+"))
	assert.Equal(t, 50, focused(t, m).Size)
	m = send(t, m, runes("-"))
	assert.Equal(t, 40, focused(t, m).Size)

	m = send(t, m, space)
	assert.True(t, m.editor.IsSelected(1))
	m = send(t, m, runes("x"))
	assert.Empty(t, m.editor.Stickers())
	assert.Zero(t, m.focus)
	assert.True(t, m.editor.AutosavePending())
}

func TestModel_SelectionTakesPrecedenceOverFocus(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	m = send(t, m, enter, enter, enter)
	require.Equal(t, 3, m.focus)

	m = send(t, m, tab) // wraps to 1
	require.Equal(t, 1, m.focus)
	m = send(t, m, space, tab, tab, space) // select 1 and 3, focus on 3
	require.Equal(t, []int{1, 3}, m.editor.Selection())

	m = send(t, m, right)
	one, _ := m.editor.Sticker(1)
	two, _ := m.editor.Sticker(2)
	three, _ := m.editor.Sticker(3)
	assert.Equal(t, unitsPerColumn, one.X)
	assert.Equal(t, 0, two.X)
	assert.Equal(t, unitsPerColumn, three.X)

	m = send(t, m, esc, right)
	three, _ = m.editor.Sticker(3)
	one, _ = m.editor.Sticker(1)
	assert.Equal(t, 2*unitsPerColumn, three.X)
	assert.Equal(t, unitsPerColumn, one.X)
}

func TestModel_ShiftTabCyclesBackwards(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	m = send(t, m, enter, enter)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.focus)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.focus)
}

func TestModel_GlyphAndPaletteCycling(t *testing.T) {
	m, prefsPath := newTestModel(t, stubFetcher{})

	m = send(t, m, runes("]"), enter)
	assert.Equal(t, "🐱", focused(t, m).Text)
	m = send(t, m, runes("["), runes("["))
	glyphs := m.currentPalette().Glyphs()
	assert.Equal(t, glyphs[len(glyphs)-1], m.currentGlyph())

	m = send(t, m, runes("p"))
	assert.Equal(t, "Food", m.currentPalette().Name)
	assert.Zero(t, m.glyphIdx)
	assert.Equal(t, 1, prefs.Load(prefsPath).PaletteIndex)

	m = send(t, m, runes("P"), runes("P"))
	assert.Equal(t, "Vehicles", m.currentPalette().Name)
	assert.Equal(t, 3, prefs.Load(prefsPath).PaletteIndex)
}

func TestModel_CycleThemePersists(t *testing.T) {
	m, prefsPath := newTestModel(t, stubFetcher{})
	m = send(t, m, runes("T"))
	assert.Equal(t, "Nightfox", m.theme.Name)
	assert.Equal(t, "Nightfox", prefs.Load(prefsPath).Theme)
}

func TestModel_PaletteEditing(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})

	m = send(t, m, runes("n"))
	require.True(t, m.prompt.active())
	m = send(t, m, runes("Faces"), enter)
	assert.False(t, m.prompt.active())
	assert.Equal(t, 5, m.palettes.Len())
	assert.Equal(t, "Faces", m.currentPalette().Name)
	assert.Empty(t, m.currentGlyph())

	m = send(t, m, enter)
	assert.Equal(t, "palette is empty", m.notice)
	assert.Empty(t, m.editor.Stickers())

	m = send(t, m, runes("a"), runes("😀😃😀"), enter)
	assert.Equal(t, []string{"😀", "😃"}, m.currentPalette().Glyphs())

	m = send(t, m, runes("X"))
	assert.Equal(t, []string{"😃"}, m.currentPalette().Glyphs())

	m = send(t, m, runes("r"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("Smileys"), enter)
	assert.Equal(t, "Smileys", m.currentPalette().Name)

	m = send(t, m, runes("D"))
	assert.Equal(t, 4, m.palettes.Len())
	assert.Equal(t, "Animals", m.currentPalette().Name)
}

func TestModel_PromptEscapeCancels(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	m = send(t, m, runes("n"), runes("Nope"), esc)
	assert.False(t, m.prompt.active())
	assert.Equal(t, 4, m.palettes.Len())
}

func TestModel_BackgroundURLPrompt(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{block: true})

	m = send(t, m, runes("b"), runes("http://x/img.png"), enter)
	assert.Equal(t, document.URL("http://x/img.png"), m.editor.Background())
	assert.Equal(t, editor.StatusFetching, m.editor.FetchStatus())
	assert.Contains(t, m.View(), "fetching")

	_ = m.commitPrompt(promptBackgroundURL, "")
	assert.Equal(t, document.KindBlank, m.editor.Background().Kind())
	assert.Equal(t, editor.StatusIdle, m.editor.FetchStatus())
}

func TestModel_PumpsEditorEvents(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{data: pngBytes(t, 8, 4)})

	m = send(t, m, runes("b"), runes("http://x/img.png"), enter)
	msg := m.Init()()
	require.IsType(t, editorEventMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.NotNil(t, cmd, "pump must re-arm")
	require.NotNil(t, m.editor.BackgroundImage())
	assert.Equal(t, 8, m.editor.BackgroundImage().Bounds().Dx())
	assert.Contains(t, m.View(), upperHalf)
	assert.Contains(t, m.renderHeader(), "8x4")
}

func TestModel_EmbedBackgroundFile(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 6, 6), 0o644))

	m = send(t, m, runes("B"), runes(path))
	next, cmd := m.Update(enter)
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.Equal(t, document.KindImageData, m.editor.Background().Kind())
	require.NotNil(t, m.editor.BackgroundImage())
	assert.Equal(t, editor.StatusIdle, m.editor.FetchStatus())

	m = send(t, m, runes("B"), runes(filepath.Join(t.TempDir(), "missing.png")))
	next, cmd = m.Update(enter)
	m = send(t, next.(Model), cmd())
	assert.True(t, strings.HasPrefix(m.notice, "cannot read"))
	assert.Equal(t, document.KindImageData, m.editor.Background().Kind())
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	m = send(t, m, runes("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	assert.Contains(t, m.View(), "Remove palette")

	m = send(t, m, runes("x"))
	assert.False(t, m.showHelp)
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	assert.Equal(t, "Loading...", New(Options{Editor: m.editor, Palettes: m.palettes}).View())

	m = send(t, m, enter)
	view := m.View()
	assert.Contains(t, view, "stickerboard")
	assert.Contains(t, view, "🐶")
	assert.Contains(t, view, "Animals 1/4")
	assert.Contains(t, view, "1 stickers")
	assert.Contains(t, view, "unsaved")
	assert.Len(t, strings.Split(view, "\n"), 24)
}

func TestModel_FocusRestoredFromDocument(t *testing.T) {
	kv := storage.NewMemory()
	var doc document.Document
	doc.AddSticker("a", 0, 0, 10)
	doc.AddSticker("b", 0, 0, 10)
	data, err := doc.Encode()
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), editor.DefaultAutosaveKey, data))

	ed, err := editor.New(context.Background(), editor.Options{Storage: kv})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ed.Close() })

	m := New(Options{
		Editor:    ed,
		Palettes:  palette.Open(context.Background(), kv, "Default", nil),
		Prefs:     prefs.Prefs{Theme: "Slate", PaletteIndex: 99, StickerSize: 40},
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	assert.Equal(t, 2, m.focus)
	assert.Equal(t, 3, m.paletteIdx)
	assert.Equal(t, "Slate", m.theme.Name)
}

func TestModel_ActivityOverlay(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	m.logPath = filepath.Join(t.TempDir(), "stickerboard.log")
	require.NoError(t, os.WriteFile(m.logPath, []byte(
		`time="2026-10-17 09:00:00" level=warning msg="background fetch failed" component=editor url="http://x/a.png"`+"\n"+
			"not a logrus line\n"), 0o644))

	next, cmd := m.Update(runes("L"))
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "Activity")
	assert.Contains(t, view, "background fetch failed")
	assert.Contains(t, view, "WARNI")
	assert.Contains(t, view, "not a logrus line")

	m = send(t, m, esc)
	assert.False(t, m.activity.open)
	assert.NotContains(t, m.View(), "background fetch failed")
}

func TestModel_ActivityWithoutLogPath(t *testing.T) {
	m, _ := newTestModel(t, stubFetcher{})
	next, cmd := m.Update(runes("L"))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "no log file configured")
}
