package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the colour palette of the chat screen
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color // message bubbles and panels
	Border     lipgloss.Color

	Primary   lipgloss.Color // the doctor's bubble and focus
	Secondary lipgloss.Color // the owner's bubble
	Accent    lipgloss.Color // attachments and recording
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultTUITheme names the palette used when none is configured
const DefaultTUITheme = "meadow"

var tuiThemes = []TUITheme{
	{
		Name:        "meadow",
		Description: "Soft greens on a dark background",
		Background:  "#14201a",
		Surface:     "#1f3a2b",
		Border:      "#3d5c4a",
		Primary:     "#6cc58a",
		Secondary:   "#7fd1b9",
		Accent:      "#e5c890",
		Warning:     "#f2c46d",
		Error:       "#e86a6a",
		Text:        "#e6f2ea",
		TextDim:     "#8aa896",
		TextMute:    "#4b6656",
	},
	{
		Name:        "pasture",
		Description: "Light theme for bright terminals",
		Background:  "#f6f8f1",
		Surface:     "#e4ecd9",
		Border:      "#b5c4a3",
		Primary:     "#2f7a4a",
		Secondary:   "#2c6e8f",
		Accent:      "#a0661f",
		Warning:     "#b7791f",
		Error:       "#b83232",
		Text:        "#1f2a22",
		TextDim:     "#5b6b5f",
		TextMute:    "#9aa89d",
	},
	{
		Name:        "clay",
		Description: "Warm earth tones",
		Background:  "#221a15",
		Surface:     "#33261e",
		Border:      "#5a4536",
		Primary:     "#d9a066",
		Secondary:   "#a8b878",
		Accent:      "#e07a5f",
		Warning:     "#f2cc8f",
		Error:       "#e05d5d",
		Text:        "#f1e6da",
		TextDim:     "#a08c7a",
		TextMute:    "#6b5849",
	},
	{
		Name:        "nord",
		Description: "Arctic blues and muted aurora colours",
		Background:  "#2e3440",
		Surface:     "#3b4252",
		Border:      "#4c566a",
		Primary:     "#88c0d0",
		Secondary:   "#a3be8c",
		Accent:      "#b48ead",
		Warning:     "#ebcb8b",
		Error:       "#bf616a",
		Text:        "#eceff4",
		TextDim:     "#7b88a1",
		TextMute:    "#4c566a",
	},
	{
		Name:        "dracula",
		Description: "High contrast dark theme",
		Background:  "#282a36",
		Surface:     "#44475a",
		Border:      "#6272a4",
		Primary:     "#8be9fd",
		Secondary:   "#50fa7b",
		Accent:      "#ff79c6",
		Warning:     "#f1fa8c",
		Error:       "#ff5555",
		Text:        "#f8f8f2",
		TextDim:     "#6272a4",
		TextMute:    "#44475a",
	},
}

var (
	themeMu         sync.RWMutex
	currentTUITheme = tuiThemes[0]
)

// GetTUITheme returns the active palette
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme activates the named palette.
// Unknown names leave the current palette in place and return false.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName looks a palette up by name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a copy of the built-in palettes
func AvailableTUIThemes() []TUITheme {
	out := make([]TUITheme, len(tuiThemes))
	copy(out, tuiThemes)
	return out
}

// TUIThemeNames returns the palette names in display order
func TUIThemeNames() []string {
	names := make([]string, len(tuiThemes))
	for i, t := range tuiThemes {
		names[i] = t.Name
	}
	return names
}
