// Package palette keeps the user's ordered list of glyph palettes and
// persists it to a storage.Store after every change.
package palette
