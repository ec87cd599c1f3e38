package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != Default() {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	src := "theme = \"Light\"\ncase_sensitive = false\n\n[colors]\nmatch_bg = \"220\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Theme != ThemeLight {
		t.Fatalf("theme = %q", p.Theme)
	}
	if p.ResultClass != "search-result" || p.Colors.MatchBg != "220" || p.Colors.CurrentBg != "" {
		t.Fatalf("unexpected prefs %+v", p)
	}
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := SaveCaseSensitive(path, true); err != nil {
		t.Fatalf("save case: %v", err)
	}
	if err := SaveRegex(path, true); err != nil {
		t.Fatalf("save regex: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !p.CaseSensitive || !p.Regex || p.Theme != ThemeSystem {
		t.Fatalf("toggles not persisted: %+v", p)
	}
	if err := Save("", p); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
