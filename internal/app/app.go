package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/stickerboard/internal/config"
	"github.com/five82/stickerboard/internal/editor"
	"github.com/five82/stickerboard/internal/fetch"
	"github.com/five82/stickerboard/internal/logging"
	"github.com/five82/stickerboard/internal/palette"
	"github.com/five82/stickerboard/internal/prefs"
	"github.com/five82/stickerboard/internal/storage"
	"github.com/five82/stickerboard/internal/ui"
)

// Options configure the stickerboard application.
type Options struct {
	ConfigPath string // empty uses ~/.config/stickerboard/config.toml
	PrefsPath  string // empty uses ~/.config/stickerboard/prefs.toml
}

// Run boots the board and blocks until the UI exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	runErr := ui.Run(ui.Options{
		Context:   ctx,
		Editor:    s.editor,
		Palettes:  s.palettes,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
		LogPath:   s.logPath,
		Logger:    s.log,
	})
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// session holds everything that outlives a single UI frame.
type session struct {
	log      *logrus.Logger
	logPath  string
	logFile  io.Closer
	store    storage.Store
	editor   *editor.Manager
	palettes *palette.Store
}

func open(ctx context.Context, opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logrus.New()
	logFile, err := logging.Setup(logger, cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"storage_type":   cfg.Storage.Type,
		"autosave_delay": cfg.AutosaveDelay.String(),
		"palette_store":  cfg.PaletteStore,
	}).Info("stickerboard starting")

	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	ed, err := editor.New(ctx, editor.Options{
		Storage:       store,
		AutosaveDelay: cfg.AutosaveDelay,
		Fetcher:       fetch.NewClient(cfg.FetchTimeout),
		Logger:        logger,
	})
	if err != nil {
		_ = store.Close()
		_ = logFile.Close()
		return nil, fmt.Errorf("init editor: %w", err)
	}

	return &session{
		log:      logger,
		logPath:  cfg.LogFile,
		logFile:  logFile,
		store:    store,
		editor:   ed,
		palettes: palette.Open(ctx, store, cfg.PaletteStore, logger),
	}, nil
}

// Close flushes the pending autosave and releases storage and the log file.
func (s *session) Close() error {
	var first error
	if err := s.editor.Close(); err != nil {
		first = err
	}
	if err := s.store.Close(); err != nil && first == nil {
		first = fmt.Errorf("close storage: %w", err)
	}
	s.log.Info("stickerboard stopped")
	_ = s.logFile.Close()
	return first
}
