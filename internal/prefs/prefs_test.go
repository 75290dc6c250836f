package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if got := Load(""); got != Default() {
		t.Fatalf("Load = %+v, want %+v", got, Default())
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".config", "stickerboard", "prefs.toml"),
		"theme = \"Slate\"\npalette_index = 2\nsticker_size = 64\n")

	got := Load("")
	want := Prefs{Theme: "Slate", PaletteIndex: 2, StickerSize: 64}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writeFile(t, path, "palette_index = 3\n")

	got := Load(path)
	if got.Theme != defaultTheme || got.StickerSize != defaultStickerSize || got.PaletteIndex != 3 {
		t.Fatalf("Load = %+v", got)
	}
}

func TestLoad_NormalizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writeFile(t, path, "theme = \"  \"\npalette_index = -4\nsticker_size = 0\n")

	if got := Load(path); got != Default() {
		t.Fatalf("Load = %+v, want %+v", got, Default())
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writeFile(t, path, "not valid toml {{{\n")

	if got := Load(path); got != Default() {
		t.Fatalf("Load = %+v, want %+v", got, Default())
	}
}

func TestSave_RoundTripsAndCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")
	want := Prefs{Theme: "Slate", PaletteIndex: 1, StickerSize: 80}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := Load(path); got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
