// Package theme resolves highlight and chrome colors.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/jotfind/internal/prefs"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	MatchFg      string
	MatchBg      string
	CurrentFg    string
	CurrentBg    string
	DividerColor string
	AddColor     string
	DelColor     string
	AccentColor  string
}

// Default returns the dark theme.
func Default() Theme {
	return darkTheme()
}

func darkTheme() Theme {
	return Theme{
		MatchFg:      "0",
		MatchBg:      "252",
		CurrentFg:    "0",
		CurrentBg:    "220",
		DividerColor: "240",
		AddColor:     "34",
		DelColor:     "196",
		AccentColor:  "63",
	}
}

func lightTheme() Theme {
	return Theme{
		MatchFg:      "0",
		MatchBg:      "253",
		CurrentFg:    "0",
		CurrentBg:    "214",
		DividerColor: "244",
		AddColor:     "22",
		DelColor:     "124",
		AccentColor:  "27",
	}
}

// For resolves the theme named by p and applies its color overrides.
// "system" follows the terminal background.
func For(p prefs.Prefs) Theme {
	var t Theme
	switch p.Theme {
	case prefs.ThemeLight:
		t = lightTheme()
	case prefs.ThemeDark:
		t = darkTheme()
	default:
		if lipgloss.HasDarkBackground() {
			t = darkTheme()
		} else {
			t = lightTheme()
		}
	}
	// Merge, keeping defaults for empty fields
	c := p.Colors
	if c.MatchFg != "" {
		t.MatchFg = c.MatchFg
	}
	if c.MatchBg != "" {
		t.MatchBg = c.MatchBg
	}
	if c.CurrentFg != "" {
		t.CurrentFg = c.CurrentFg
	}
	if c.CurrentBg != "" {
		t.CurrentBg = c.CurrentBg
	}
	if c.Divider != "" {
		t.DividerColor = c.Divider
	}
	return t
}

// MatchStyle returns the style of a match decoration.
func (t Theme) MatchStyle(current bool) lipgloss.Style {
	if current {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.CurrentFg)).
			Background(lipgloss.Color(t.CurrentBg)).
			Bold(true)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MatchFg)).
		Background(lipgloss.Color(t.MatchBg))
}

func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DividerColor)).Render(s)
}

func (t Theme) AddText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.AddColor)).Render(s)
}

func (t Theme) DelText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DelColor)).Render(s)
}

func (t Theme) AccentText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.AccentColor)).Render(s)
}
