package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		x, y     int
		col, row int
	}{
		{0, 0, 40, 10},
		{9, 19, 40, 10},
		{10, 20, 41, 11},
		{-1, -1, 39, 9},
		{-10, -20, 39, 9},
		{-11, -21, 38, 8},
	}
	for _, tt := range tests {
		col, row := cellOf(tt.x, tt.y, 80, 20)
		assert.Equal(t, tt.col, col, "col for x=%d", tt.x)
		assert.Equal(t, tt.row, row, "row for y=%d", tt.y)
	}
}

func TestFitSize(t *testing.T) {
	w, h := fitSize(100, 50, 80, 80)
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)

	w, h = fitSize(10, 100, 80, 40)
	assert.Equal(t, 4, w)
	assert.Equal(t, 40, h)

	w, h = fitSize(0, 10, 80, 40)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestCanvas_PlaceWideGlyphs(t *testing.T) {
	c := newCanvas(6, 1, lipgloss.NewStyle())

	require.True(t, c.place(0, 0, "🐶", lipgloss.NewStyle(), "s"))
	assert.True(t, c.cells[0][1].covered)
	assert.Equal(t, "🐶    ", c.render())

	// Overlapping the right half of a wide glyph clears it.
	require.True(t, c.place(0, 1, "a", lipgloss.NewStyle(), "s"))
	assert.Equal(t, " a    ", c.render())

	assert.False(t, c.place(0, 5, "🐱", lipgloss.NewStyle(), "s"))
	assert.False(t, c.place(1, 0, "a", lipgloss.NewStyle(), "s"))
	assert.False(t, c.place(0, -1, "a", lipgloss.NewStyle(), "s"))
}

func TestCanvas_PaintImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	c := newCanvas(10, 2, lipgloss.NewStyle())
	c.paintImage(img)

	// 2x4 pixels fit as 2 columns by 4 half rows, centered.
	out := strings.Split(c.render(), "\n")
	require.Len(t, out, 2)
	for _, line := range out {
		assert.Equal(t, "    ▀▀    ", line)
	}
	assert.Equal(t, "img:#ff0000/#ff0000", c.cells[0][4].key)
}

func TestCanvas_CenterText(t *testing.T) {
	c := newCanvas(12, 3, lipgloss.NewStyle())
	c.centerText("hello", lipgloss.NewStyle(), "t")
	assert.Equal(t, "   hello    ", strings.Split(c.render(), "\n")[1])
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 0, floorDiv(9, 10))
	assert.Equal(t, -1, floorDiv(-1, 10))
	assert.Equal(t, -1, floorDiv(-10, 10))
	assert.Equal(t, -2, floorDiv(-11, 10))
}
