package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlyphs_SplitsGraphemeClusters(t *testing.T) {
	p := Palette{Emojis: "👍🏽🇳🇴 ✈️👨‍👩‍👧"}
	assert.Equal(t, []string{"👍🏽", "🇳🇴", "✈️", "👨‍👩‍👧"}, p.Glyphs())
	assert.Empty(t, Palette{}.Glyphs())
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		add      string
		want     string
	}{
		{name: "prepends new", existing: "🐶", add: "🐱🐭", want: "🐱🐭🐶"},
		{name: "skips present", existing: "🐶🐱", add: "🐱🐭", want: "🐭🐶🐱"},
		{name: "dedups input", existing: "", add: "🐭🐭🐭", want: "🐭"},
		{name: "skin tones differ", existing: "👍", add: "👍🏽", want: "👍🏽👍"},
		{name: "drops whitespace", existing: "🐶", add: " 🐱 ", want: "🐱🐶"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merge(tt.existing, tt.add))
		})
	}
}

func TestWithout(t *testing.T) {
	assert.Equal(t, "🐶🐭", without("🐶🐱🐭🐱", "🐱"))
	assert.Equal(t, "👍🏽", without("👍👍🏽", "👍"))
}
