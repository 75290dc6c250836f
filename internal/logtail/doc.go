// Package logtail reads the tail of the stickerboard log for the activity
// view. Read keeps a ring buffer of the last N lines, so memory stays
// bounded however large the file grows. Parse understands the key=value
// layout written by logrus.TextFormatter.
package logtail
