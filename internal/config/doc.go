// Package config loads stickerboard's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stickerboard/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. Apply STICKERBOARD_* environment overrides
//  5. Fill empty fields with defaults and expand ~ in paths
//
// # Example
//
//	data_dir = "~/.local/share/stickerboard"
//	autosave_delay = "5s"
//	fetch_timeout = "15s"
//	palette_store = "Default"
//	log_level = "info"
//
//	[storage]
//	type = "sqlite"        # memory | filesystem | sqlite | s3
//	path = "~/boards.db"   # filesystem dir or sqlite file
//	bucket = ""            # s3 only
//	prefix = ""
//	region = ""
//
// Durations are Go duration strings and must be positive. An unparsable file
// is an error; a missing one is not.
package config
