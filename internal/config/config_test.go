package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvStorageType, EnvStoragePath, EnvS3Bucket, EnvS3Prefix, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.AutosaveDelay != defaultAutosaveDelay {
		t.Fatalf("AutosaveDelay = %v, want %v", cfg.AutosaveDelay, defaultAutosaveDelay)
	}
	if cfg.FetchTimeout != defaultFetchTimeout {
		t.Fatalf("FetchTimeout = %v, want %v", cfg.FetchTimeout, defaultFetchTimeout)
	}
	if cfg.PaletteStore != defaultPaletteStore {
		t.Fatalf("PaletteStore = %q, want %q", cfg.PaletteStore, defaultPaletteStore)
	}
	if cfg.LogFile != filepath.Join(wantDataDir, "stickerboard.log") {
		t.Fatalf("LogFile = %q, want it under data dir", cfg.LogFile)
	}
	if cfg.Storage.Type != StorageFilesystem {
		t.Fatalf("Storage.Type = %q, want %q", cfg.Storage.Type, StorageFilesystem)
	}
	if cfg.Storage.Path != filepath.Join(wantDataDir, "store") {
		t.Fatalf("Storage.Path = %q, want %q", cfg.Storage.Path, filepath.Join(wantDataDir, "store"))
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
data_dir = "  ~/.boards  "
autosave_delay = "750ms"
fetch_timeout = " 3s "
palette_store = "Work"
log_level = "DEBUG"

[storage]
type = "sqlite"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".boards") {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.AutosaveDelay != 750*time.Millisecond {
		t.Fatalf("AutosaveDelay = %v, want 750ms", cfg.AutosaveDelay)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Fatalf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.PaletteStore != "Work" {
		t.Fatalf("PaletteStore = %q, want Work", cfg.PaletteStore)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Storage.Type != StorageSQLite {
		t.Fatalf("Storage.Type = %q, want sqlite", cfg.Storage.Type)
	}
	if cfg.Storage.Path != filepath.Join(cfg.DataDir, "stickerboard.db") {
		t.Fatalf("Storage.Path = %q, want default db under data dir", cfg.Storage.Path)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvStorageType, "s3")
	t.Setenv(EnvS3Bucket, "boards")
	t.Setenv(EnvS3Prefix, "/team/")
	t.Setenv(EnvLogLevel, "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\ntype = \"memory\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Type != StorageS3 || cfg.Storage.Bucket != "boards" || cfg.Storage.Prefix != "team" {
		t.Fatalf("Storage = %#v, want s3 boards/team", cfg.Storage)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", `data_dir = [`, "parse config"},
		{"bad duration", `autosave_delay = "soon"`, "parse autosave_delay"},
		{"negative duration", `fetch_timeout = "-1s"`, "must be positive"},
		{"unknown storage", "[storage]\ntype = \"floppy\"", "unknown storage type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
