package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stickerboard/internal/document"
	"github.com/five82/stickerboard/internal/editor"
)

// upperHalf paints the top pixel with the foreground and the bottom pixel
// with the background.
const upperHalf = "▀"

type cell struct {
	text    string
	key     string // cells with equal keys share a style
	style   lipgloss.Style
	covered bool // right half of a wide glyph
}

type canvas struct {
	width, height int
	base          lipgloss.Style
	cells         [][]cell
}

func newCanvas(width, height int, base lipgloss.Style) *canvas {
	c := &canvas{width: width, height: height, base: base, cells: make([][]cell, height)}
	for r := range c.cells {
		row := make([]cell, width)
		for i := range row {
			row[i] = c.blank()
		}
		c.cells[r] = row
	}
	return c
}

func (c *canvas) blank() cell {
	return cell{text: " ", key: "base", style: c.base}
}

// cellOf maps document coordinates to a cell. The document origin sits at
// the center of the canvas.
func cellOf(x, y, width, height int) (col, row int) {
	return width/2 + floorDiv(x, unitsPerColumn), height/2 + floorDiv(y, unitsPerRow)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// fitSize scales src to fit within dst, keeping the aspect ratio.
func fitSize(srcW, srcH, dstW, dstH int) (w, h int) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w = max(int(math.Round(float64(srcW)*scale)), 1)
	h = max(int(math.Round(float64(srcH)*scale)), 1)
	return min(w, dstW), min(h, dstH)
}

// paintImage draws img centered, two pixels per cell.
func (c *canvas) paintImage(img image.Image) {
	bounds := img.Bounds()
	w, h := fitSize(bounds.Dx(), bounds.Dy(), c.width, c.height*2)
	if w == 0 || h == 0 {
		return
	}
	offX := (c.width - w) / 2
	offY := (c.height*2 - h) / 2

	sample := func(px, py int) (lipgloss.Color, bool) {
		if px < 0 || px >= w || py < 0 || py >= h {
			return "", false
		}
		sx := bounds.Min.X + px*bounds.Dx()/w
		sy := bounds.Min.Y + py*bounds.Dy()/h
		return hexColor(img.At(sx, sy)), true
	}

	for r := 0; r < c.height; r++ {
		for col := 0; col < c.width; col++ {
			top, okTop := sample(col-offX, r*2-offY)
			bottom, okBottom := sample(col-offX, r*2+1-offY)
			if !okTop && !okBottom {
				continue
			}
			style := c.base
			if okTop {
				style = style.Foreground(top)
			} else {
				style = style.Foreground(c.base.GetBackground())
			}
			if okBottom {
				style = style.Background(bottom)
			}
			c.cells[r][col] = cell{
				text:  upperHalf,
				key:   fmt.Sprintf("img:%s/%s", top, bottom),
				style: style,
			}
		}
	}
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// centerText writes text on the middle row.
func (c *canvas) centerText(text string, style lipgloss.Style, key string) {
	text = truncate(text, c.width)
	col := (c.width - cellWidth(text)) / 2
	c.place(c.height/2, col, text, style, key)
}

// place puts text at row/col. It reports false when text does not fit.
func (c *canvas) place(row, col int, text string, style lipgloss.Style, key string) bool {
	w := cellWidth(text)
	if row < 0 || row >= c.height || col < 0 || col+w > c.width {
		return false
	}
	c.clearSpan(row, col, w)
	c.cells[row][col] = cell{text: text, key: key, style: style}
	for i := 1; i < w; i++ {
		c.cells[row][col+i] = cell{covered: true}
	}
	return true
}

// clearSpan blanks every glyph that overlaps [col, col+w) on row.
func (c *canvas) clearSpan(row, col, w int) {
	cells := c.cells[row]
	start := col
	for start > 0 && cells[start].covered {
		start--
	}
	end := col + w
	for end < c.width && cells[end].covered {
		end++
	}
	for i := start; i < end; i++ {
		cells[i] = c.blank()
	}
}

// render joins runs of cells with the same style key.
func (c *canvas) render() string {
	var out strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			out.WriteString("\n")
		}
		var run strings.Builder
		runKey := ""
		var runStyle lipgloss.Style
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for _, cl := range row {
			if cl.covered {
				continue
			}
			if cl.key != runKey {
				flush()
				runKey, runStyle = cl.key, cl.style
			}
			run.WriteString(cl.text)
		}
		flush()
	}
	return out.String()
}

// renderCanvas draws the background and the stickers into a width x height
// block.
func (m Model) renderCanvas(width, height int) string {
	styles := m.theme.Styles()
	c := newCanvas(width, height, styles.Canvas)

	bg := m.editor.Background()
	switch {
	case m.editor.BackgroundImage() != nil:
		c.paintImage(m.editor.BackgroundImage())
	case m.editor.FetchStatus() == editor.StatusFetching:
		c.centerText("fetching "+truncateMiddle(bg.Address(), 48), styles.WarningText.Inherit(styles.Canvas), "fetching")
	case bg.Kind() != document.KindBlank:
		c.centerText("background unavailable", styles.FaintText.Inherit(styles.Canvas), "unavailable")
	}

	for _, s := range m.editor.Stickers() {
		col, row := cellOf(s.X, s.Y, width, height)
		style, key := styles.Canvas, "sticker"
		switch {
		case s.ID == m.focus && m.editor.IsSelected(s.ID):
			style, key = styles.Selected.Underline(true), "selected-focus"
		case m.editor.IsSelected(s.ID):
			style, key = styles.Selected, "selected"
		case s.ID == m.focus:
			style, key = styles.Focused.Inherit(styles.Canvas), "focus"
		}
		c.place(row, col, s.Text, style, key)
	}
	return c.render()
}

// offCanvas counts stickers that cannot be drawn at the current size.
func (m Model) offCanvas(width, height int) int {
	n := 0
	for _, s := range m.editor.Stickers() {
		col, row := cellOf(s.X, s.Y, width, height)
		if row < 0 || row >= height || col < 0 || col+cellWidth(s.Text) > width {
			n++
		}
	}
	return n
}
