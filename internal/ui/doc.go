// Package ui is the Bubble Tea front end of stickerboard.
//
// The Model is the single goroutine that owns the editor: key presses become
// editor intents, and a command blocked on editor.Manager.Events turns
// background fetch results and autosave timers into messages that are fed
// back through Handle.
//
// Layout, top to bottom:
//
//   - header: background source and fetch state
//   - canvas: half-block preview of the background with stickers placed on
//     top; the document origin is the canvas center
//   - palette bar: the focused palette with the chosen glyph highlighted
//   - footer: sticker and selection counts, focus details, save state
package ui
