// Package app is the composition root of stickerboard.
//
// Run loads the configuration, points logrus at the log file, opens the
// configured key-value backend and builds the editor and palette store on top
// of it. It then hands both to the Bubble Tea UI and blocks. When the UI
// exits, any pending autosave is flushed before storage is closed.
//
//	Run()
//	 ├─> config.Load()      TOML file plus env overrides
//	 ├─> logging.Setup()    logrus to file
//	 ├─> storage.Open()     memory | filesystem | sqlite | s3
//	 ├─> editor.New()       restores the autosaved document
//	 ├─> palette.Open()     restores or seeds palettes
//	 └─> ui.Run()           blocks until quit
package app
