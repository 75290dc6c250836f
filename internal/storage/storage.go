package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/stickerboard/internal/config"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is an opaque get/set-by-key byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg config.Storage, logger logrus.FieldLogger) (Store, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	fields := logrus.Fields{"storage_type": cfg.Type}

	var (
		store Store
		err   error
	)
	switch cfg.Type {
	case config.StorageMemory:
		store = NewMemory()
	case config.StorageFilesystem, "":
		fields["storage_type"] = config.StorageFilesystem
		fields["base_path"] = cfg.Path
		store, err = NewFilesystem(cfg.Path)
	case config.StorageSQLite:
		fields["data_source"] = cfg.Path
		store, err = NewSQLite(ctx, cfg.Path)
	case config.StorageS3:
		fields["bucket"] = cfg.Bucket
		fields["prefix"] = cfg.Prefix
		store, err = NewS3(ctx, cfg.Bucket, cfg.Prefix, cfg.Region)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", fields["storage_type"], err)
	}
	logger.WithFields(fields).Info("using storage")
	return store, nil
}

// validKey rejects keys that could escape a backend's namespace.
func validKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	if path.Base(trimmed) != trimmed || strings.ContainsAny(trimmed, `/\`) {
		return fmt.Errorf("invalid key %q: must not be a path", key)
	}
	return nil
}
