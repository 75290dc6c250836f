// Package fetch resolves background image references into decoded images.
//
// Client.Fetch performs I/O only: http and https URLs go through a net/http
// client with a timeout, a user agent and a body size cap; file URLs and bare
// paths are read from disk. Decode maps the bytes to an image.Image, supporting
// PNG, JPEG and GIF from the standard library plus BMP and WebP from
// golang.org/x/image.
//
// Neither half touches editor state. The editor runs Fetch on its own goroutine
// and decodes on the coordinating one.
package fetch
