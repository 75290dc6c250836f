package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage backend names.
const (
	StorageMemory     = "memory"
	StorageFilesystem = "filesystem"
	StorageSQLite     = "sqlite"
	StorageS3         = "s3"
)

// Config captures everything stickerboard reads at startup.
type Config struct {
	DataDir       string
	AutosaveDelay time.Duration
	FetchTimeout  time.Duration
	PaletteStore  string
	LogFile       string
	LogLevel      string
	Storage       Storage
}

// Storage selects and parameterizes the key-value backend.
type Storage struct {
	Type   string `toml:"type"`
	Path   string `toml:"path"`
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
	Region string `toml:"region"`
}

const (
	defaultConfigPath    = "~/.config/stickerboard/config.toml"
	defaultDataDir       = "~/.local/share/stickerboard"
	defaultAutosaveDelay = 5 * time.Second
	defaultFetchTimeout  = 15 * time.Second
	defaultPaletteStore  = "Default"
	defaultLogLevel      = "info"
)

// Environment overrides, applied after the file is parsed.
const (
	EnvStorageType = "STICKERBOARD_STORAGE_TYPE"
	EnvStoragePath = "STICKERBOARD_STORAGE_PATH"
	EnvS3Bucket    = "STICKERBOARD_S3_BUCKET"
	EnvS3Prefix    = "STICKERBOARD_S3_PREFIX"
	EnvLogLevel    = "STICKERBOARD_LOG_LEVEL"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	raw.applyEnv()
	return raw.resolve()
}

type rawConfig struct {
	DataDir       string  `toml:"data_dir"`
	AutosaveDelay string  `toml:"autosave_delay"`
	FetchTimeout  string  `toml:"fetch_timeout"`
	PaletteStore  string  `toml:"palette_store"`
	LogFile       string  `toml:"log_file"`
	LogLevel      string  `toml:"log_level"`
	Storage       Storage `toml:"storage"`
}

func (r *rawConfig) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	override(&r.Storage.Type, EnvStorageType)
	override(&r.Storage.Path, EnvStoragePath)
	override(&r.Storage.Bucket, EnvS3Bucket)
	override(&r.Storage.Prefix, EnvS3Prefix)
	override(&r.LogLevel, EnvLogLevel)
}

func (r rawConfig) resolve() (Config, error) {
	cfg := Config{
		DataDir:      mustExpand(orDefault(r.DataDir, defaultDataDir)),
		PaletteStore: orDefault(r.PaletteStore, defaultPaletteStore),
		LogLevel:     strings.ToLower(orDefault(r.LogLevel, defaultLogLevel)),
	}

	var err error
	if cfg.AutosaveDelay, err = parseDuration("autosave_delay", r.AutosaveDelay, defaultAutosaveDelay); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout, err = parseDuration("fetch_timeout", r.FetchTimeout, defaultFetchTimeout); err != nil {
		return Config{}, err
	}

	cfg.LogFile = strings.TrimSpace(r.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "stickerboard.log")
	} else {
		cfg.LogFile = mustExpand(cfg.LogFile)
	}

	st := Storage{
		Type:   strings.ToLower(orDefault(r.Storage.Type, StorageFilesystem)),
		Path:   strings.TrimSpace(r.Storage.Path),
		Bucket: strings.TrimSpace(r.Storage.Bucket),
		Prefix: strings.Trim(strings.TrimSpace(r.Storage.Prefix), "/"),
		Region: strings.TrimSpace(r.Storage.Region),
	}
	switch st.Type {
	case StorageFilesystem:
		if st.Path == "" {
			st.Path = filepath.Join(cfg.DataDir, "store")
		}
		st.Path = mustExpand(st.Path)
	case StorageSQLite:
		if st.Path == "" {
			st.Path = filepath.Join(cfg.DataDir, "stickerboard.db")
		}
		st.Path = mustExpand(st.Path)
	case StorageMemory, StorageS3:
	default:
		return Config{}, fmt.Errorf("unknown storage type %q", st.Type)
	}
	cfg.Storage = st

	return cfg, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse %s: must be positive, got %s", field, d)
	}
	return d, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
