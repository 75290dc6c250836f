package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the board.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Cancel     key.Binding
	Activity   key.Binding

	// Stickers
	NextSticker     key.Binding
	PrevSticker     key.Binding
	Up              key.Binding
	Down            key.Binding
	Left            key.Binding
	Right           key.Binding
	Grow            key.Binding
	Shrink          key.Binding
	ToggleSelect    key.Binding
	RemoveSelected  key.Binding
	AddSticker      key.Binding
	PrevGlyph       key.Binding
	NextGlyph       key.Binding
	SetBackground   key.Binding
	EmbedBackground key.Binding

	// Palettes
	NextPalette   key.Binding
	PrevPalette   key.Binding
	NewPalette    key.Binding
	RenamePalette key.Binding
	AddGlyphs     key.Binding
	RemoveGlyph   key.Binding
	RemovePalette key.Binding

	// Prompt
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear selection"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		NextSticker: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Focus next sticker"),
		),
		PrevSticker: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Focus previous sticker"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Move right"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Grow"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Shrink"),
		),
		ToggleSelect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle selection"),
		),
		RemoveSelected: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove selected"),
		),
		AddSticker: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Place glyph"),
		),
		PrevGlyph: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous glyph"),
		),
		NextGlyph: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next glyph"),
		),
		SetBackground: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Background URL"),
		),
		EmbedBackground: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Embed background file"),
		),

		NextPalette: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Next palette"),
		),
		PrevPalette: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Previous palette"),
		),
		NewPalette: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New palette"),
		),
		RenamePalette: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename palette"),
		),
		AddGlyphs: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add glyphs"),
		),
		RemoveGlyph: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Remove glyph"),
		),
		RemovePalette: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Remove palette"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer hint.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSticker, k.PrevSticker, k.Up, k.Down, k.Left, k.Right, k.Grow, k.Shrink},
		{k.ToggleSelect, k.Cancel, k.RemoveSelected, k.AddSticker, k.PrevGlyph, k.NextGlyph},
		{k.SetBackground, k.EmbedBackground},
		{k.NextPalette, k.PrevPalette, k.NewPalette, k.RenamePalette, k.AddGlyphs, k.RemoveGlyph, k.RemovePalette},
		{k.Activity, k.CycleTheme, k.Help, k.Quit},
	}
}
