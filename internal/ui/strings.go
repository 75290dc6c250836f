package ui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// truncate shortens value to at most limit terminal cells, adding an
// ellipsis when something was cut.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || uniseg.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		w := g.Width()
		if width+w > limit-1 {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	b.WriteString("…")
	return b.String()
}

// truncateMiddle keeps both ends of value, which suits URLs and paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// cellWidth is the number of terminal columns text occupies, never less than
// one.
func cellWidth(text string) int {
	return max(uniseg.StringWidth(text), 1)
}
