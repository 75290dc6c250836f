// Package editor holds the document being edited together with its derived
// state: the sticker selection, the decoded background image and the fetch
// status. Mutations are coalesced into delayed autosaves.
//
// Background fetches and autosave timers report back through Events; the
// goroutine that owns the Manager passes each event to Handle.
package editor
