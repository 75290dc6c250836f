package palette

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Palette is a named set of glyphs offered for placing stickers.
type Palette struct {
	Name   string `json:"name"`
	Emojis string `json:"emojis"`
	ID     int    `json:"id"`
}

// Glyphs splits the palette into user-perceived characters.
func (p Palette) Glyphs() []string {
	return glyphs(p.Emojis)
}

func glyphs(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if strings.TrimSpace(g.Str()) == "" {
			continue
		}
		out = append(out, g.Str())
	}
	return out
}

// merge prepends the glyphs of add that are not already in existing.
func merge(existing, add string) string {
	seen := make(map[string]struct{})
	for _, g := range glyphs(existing) {
		seen[g] = struct{}{}
	}
	var b strings.Builder
	for _, g := range glyphs(add) {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		b.WriteString(g)
	}
	b.WriteString(existing)
	return b.String()
}

func without(emojis, glyph string) string {
	var b strings.Builder
	for _, g := range glyphs(emojis) {
		if g != glyph {
			b.WriteString(g)
		}
	}
	return b.String()
}

type seed struct {
	name   string
	emojis string
}

// defaults are inserted in order, each at the front.
var defaults = []seed{
	{"Vehicles", "🚗🚕🚙🚌🚎🏎🚓🚑🚒🚐🛻🚚🚛🚜🛴🚲🛵🏍🚨🚔🚍🚘🚖✈️🚀🛸"},
	{"Sport", "⚽️🏀🏈⚾️🥎🎾🏐🏉🥏🎱🪀🏓🏸🏒🏑⛳️🏹🎣🥊🥋"},
	{"Food", "🍏🍎🍐🍊🍋🍌🍉🍇🍓🫐🍈🍒🍑🥭🍍🥥🥝🍅🥑🥦"},
	{"Animals", "🐶🐱🐭🐹🐰🦊🐻🐼🐨🐯🦁🐮🐷🐸🐵🐔🐧🐦🐤🦆"},
}
