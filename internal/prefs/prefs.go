package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Colors overrides theme colors. Empty fields keep the theme's value.
type Colors struct {
	MatchFg   string `toml:"match_fg,omitempty"`
	MatchBg   string `toml:"match_bg,omitempty"`
	CurrentFg string `toml:"current_fg,omitempty"`
	CurrentBg string `toml:"current_bg,omitempty"`
	Divider   string `toml:"divider,omitempty"`
}

// Prefs represents persisted UI preferences.
type Prefs struct {
	Theme         string `toml:"theme"`
	CaseSensitive bool   `toml:"case_sensitive"`
	Regex         bool   `toml:"regex"`
	ResultClass   string `toml:"result_class"`
	Colors        Colors `toml:"colors"`
}

// Themes accepted by the theme key.
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{
		Theme:       ThemeSystem,
		ResultClass: "search-result",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/jotfind/config.toml, falling back to
// the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "jotfind", "config.toml")
}

// Load reads preferences from path over the defaults. A missing file is not
// an error.
func Load(path string) (Prefs, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	_, err := toml.DecodeFile(path, &p)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("load prefs %s: %w", path, err)
	}
	p.Theme = normalizeTheme(p.Theme)
	if p.ResultClass == "" {
		p.ResultClass = Default().ResultClass
	}
	return p, nil
}

// Save writes p to path, creating the parent directory.
func Save(path string, p Prefs) error {
	if path == "" {
		return errors.New("save prefs: no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		return fmt.Errorf("encode prefs: %w", err)
	}
	return f.Close()
}

// SaveCaseSensitive persists the case toggle, keeping the other keys.
func SaveCaseSensitive(path string, v bool) error {
	p, err := Load(path)
	if err != nil {
		return err
	}
	p.CaseSensitive = v
	return Save(path, p)
}

// SaveRegex persists the pattern mode toggle, keeping the other keys.
func SaveRegex(path string, v bool) error {
	p, err := Load(path)
	if err != nil {
		return err
	}
	p.Regex = v
	return Save(path, p)
}

func normalizeTheme(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeSystem
	}
}
