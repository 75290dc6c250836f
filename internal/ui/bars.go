package ui

import (
	"fmt"
	"strings"

	"github.com/five82/stickerboard/internal/document"
	"github.com/five82/stickerboard/internal/editor"
)

// renderHeader shows the background and its resolution state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := NewBgStyle(m.theme.Surface)

	bg := m.editor.Background()
	var desc string
	switch bg.Kind() {
	case document.KindURL:
		desc = truncateMiddle(bg.Address(), max(m.width/2, 16))
	default:
		desc = bg.String()
	}

	var state string
	switch img := m.editor.BackgroundImage(); {
	case m.editor.FetchStatus() == editor.StatusFetching:
		state = bar.Render("fetching", styles.WarningText)
	case img != nil:
		state = bar.Render(fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()), styles.SuccessText)
	case bg.Kind() != document.KindBlank:
		state = bar.Render("unavailable", styles.DangerText)
	}

	parts := []string{
		bar.Render("stickerboard", styles.Logo),
		bar.Render("background", styles.FaintText) + bar.Spaces(1) + bar.Render(desc, styles.Text),
		state,
	}
	return styles.Bar.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(bar.Join(parts, "  "))
}

// renderPaletteBar lists the current palette with the chosen glyph
// highlighted.
func (m Model) renderPaletteBar() string {
	styles := m.theme.Styles()
	bar := NewBgStyle(m.theme.Surface)
	p := m.currentPalette()

	head := bar.Render(fmt.Sprintf("%s %d/%d", truncate(p.Name, 20), m.paletteIdx+1, m.palettes.Len()), styles.AccentText.Bold(true))

	budget := m.width - cellWidth(p.Name) - 12
	glyphs := p.Glyphs()
	chosen := min(max(m.glyphIdx, 0), max(len(glyphs)-1, 0))

	// Scroll so the chosen glyph stays visible.
	start, used := 0, 0
	for i := chosen; i >= 0; i-- {
		used += cellWidth(glyphs[i]) + 1
		if used > budget {
			break
		}
		start = i
	}

	var b strings.Builder
	used = 0
	for i := start; i < len(glyphs); i++ {
		w := cellWidth(glyphs[i]) + 1
		if used+w > budget {
			break
		}
		used += w
		if i == chosen {
			b.WriteString(styles.Selected.Render(glyphs[i]))
		} else {
			b.WriteString(bar.Render(glyphs[i], styles.Text))
		}
		b.WriteString(bar.Spaces(1))
	}
	if len(glyphs) == 0 {
		b.WriteString(bar.Render("empty, press a to add glyphs", styles.FaintText))
	}

	return styles.Bar.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(head + bar.Spaces(2) + b.String())
}

// renderFooter summarizes stickers, selection and save state.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bar := NewBgStyle(m.theme.Surface)

	stickers := m.editor.Stickers()
	parts := []string{
		bar.Render(fmt.Sprintf("%d stickers", len(stickers)), styles.Text),
		bar.Render(fmt.Sprintf("%d selected", len(m.editor.Selection())), styles.MutedText),
	}
	if s, ok := m.editor.Sticker(m.focus); ok {
		parts = append(parts, bar.Render(fmt.Sprintf("#%d %s size %d at %d,%d", s.ID, s.Text, s.Size, s.X, s.Y), styles.AccentText))
	}
	if n := m.offCanvas(m.width, m.canvasHeight()); n > 0 {
		parts = append(parts, bar.Render(fmt.Sprintf("%d off canvas", n), styles.WarningText))
	}
	if m.editor.AutosavePending() {
		parts = append(parts, bar.Render("unsaved", styles.WarningText))
	} else {
		parts = append(parts, bar.Render("saved", styles.SuccessText))
	}
	if m.notice != "" {
		parts = append(parts, bar.Render(m.notice, styles.DangerText))
	}

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+strings.ToLower(h.Desc))
	}
	parts = append(parts, bar.Render(strings.Join(hints, " · "), styles.FaintText))

	return styles.Bar.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(bar.Join(parts, "  "))
}
