package render

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Built-in markdown theme names
const (
	ThemeMeadow     = "meadow"
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeDracula    = "dracula"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// builtinStyle returns the glamour style config for a built-in theme name.
func builtinStyle(name string) (ansi.StyleConfig, bool) {
	switch name {
	case ThemeMeadow:
		return meadowStyle(), true
	case ThemeDark:
		return styles.DarkStyleConfig, true
	case ThemeLight:
		return styles.LightStyleConfig, true
	case ThemeTokyoNight:
		return styles.TokyoNightStyleConfig, true
	case ThemeDracula:
		return styles.DraculaStyleConfig, true
	case ThemeNoTTY:
		return styles.NoTTYStyleConfig, true
	case ThemeASCII:
		return styles.ASCIIStyleConfig, true
	default:
		return ansi.StyleConfig{}, false
	}
}

// meadowStyle is the dark style recoloured to the clinic's greens.
// Only fields of the copy are reassigned so the shared glamour config is untouched.
func meadowStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	heading := "#6cc58a"
	strong := "#a6e3a1"
	link := "#7fd1b9"
	code := "#e5c890"
	bg := "#1f3a2b"

	cfg.Heading.Color = &heading
	cfg.H1.Color = &strong
	cfg.H1.BackgroundColor = &bg
	cfg.Strong.Color = &strong
	cfg.Link.Color = &link
	cfg.LinkText.Color = &link
	cfg.Code.Color = &code

	return cfg
}

// IsBuiltinStyle reports whether style names a built-in theme rather than a file path.
func IsBuiltinStyle(style string) bool {
	_, ok := builtinStyle(style)
	return ok
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the built-in markdown themes.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeMeadow, Description: "Green accents on a dark background (default)"},
		{Name: ThemeDark, Description: "Dark theme"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
