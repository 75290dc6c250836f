package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/stickerboard/internal/document"
	"github.com/five82/stickerboard/internal/editor"
)

func writeConfig(t *testing.T, dir, storageType string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		`data_dir = "` + filepath.ToSlash(dir) + `"`,
		`autosave_delay = "1h"`,
		`log_level = "debug"`,
		`[storage]`,
		`type = "` + storageType + `"`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpen_WiresComponentsAndFlushesOnClose(t *testing.T) {
	dir := t.TempDir()
	opts := Options{ConfigPath: writeConfig(t, dir, "sqlite")}

	s, err := open(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, s.palettes.Len())

	id := s.editor.AddSticker("🚀", 1, 2, 30)
	assert.True(t, s.editor.AutosavePending())
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, "stickerboard.db"))
	require.NoError(t, err)
	logData, err := os.ReadFile(filepath.Join(dir, "stickerboard.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "stickerboard starting")

	reopened, err := open(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok := reopened.editor.Sticker(id)
	require.True(t, ok)
	assert.Equal(t, document.Sticker{ID: id, Text: "🚀", X: 1, Y: 2, Size: 30}, got)
	assert.Equal(t, editor.StatusIdle, reopened.editor.FetchStatus())
}

func TestOpen_FilesystemDefaultPath(t *testing.T) {
	dir := t.TempDir()
	s, err := open(context.Background(), Options{ConfigPath: writeConfig(t, dir, "filesystem")})
	require.NoError(t, err)
	s.palettes.Insert("Extra", "⭐", 0)
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, "store", "PaletteStoreDefault"))
	assert.NoError(t, err)
}

func TestOpen_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := open(context.Background(), Options{ConfigPath: writeConfig(t, dir, "floppy")})
	assert.ErrorContains(t, err, "load config")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level = \"loud\"\n[storage]\ntype = \"memory\"\n"), 0o644))
	_, err = open(context.Background(), Options{ConfigPath: bad})
	assert.ErrorContains(t, err, "init logging")
}
