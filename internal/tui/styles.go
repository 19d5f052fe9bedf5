// Package tui provides the terminal user interface for vetchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	failedBubbleStyle    lipgloss.Style
	timestampStyle       lipgloss.Style

	// Attachment indicators inside bubbles and pending chips in the composer
	attachmentStyle lipgloss.Style
	chipStyle       lipgloss.Style
	recordingStyle  lipgloss.Style

	disclaimerStyle lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style

	loadingStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	feedbackStyle   lipgloss.Style

	errorStyle lipgloss.Style

	noticeStyle      lipgloss.Style
	noticeTitleStyle lipgloss.Style

	pickerPanelStyle lipgloss.Style

	// Settings editor
	settingsPanelStyle    lipgloss.Style
	settingsCursorStyle   lipgloss.Style
	settingsItemStyle     lipgloss.Style
	settingsSelectedStyle lipgloss.Style
	settingsValueStyle    lipgloss.Style
	settingsEnabledStyle  lipgloss.Style
	settingsDisabledStyle lipgloss.Style
)

// Gradient colors for the loading animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#1dd1a1"),
	lipgloss.Color("#6cc58a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#e5c890"),
	lipgloss.Color("#feca57"),
	lipgloss.Color("#7fd1b9"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#48dbfb"),
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	// User bubbles sit to the right, the doctor's to the left
	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(6)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(6)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(6)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	failedBubbleStyle = assistantBubbleStyle.
		BorderForeground(colorError)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	attachmentStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Italic(true)

	chipStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorSurface).
		Padding(0, 1).
		MarginRight(1)

	recordingStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	disclaimerStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Italic(true).
		Align(lipgloss.Center)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	feedbackStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	noticeStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorError).
		Padding(1, 3).
		Align(lipgloss.Center)

	noticeTitleStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	pickerPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1)

	settingsPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2)

	settingsCursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	settingsItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	settingsSelectedStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	settingsValueStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	settingsEnabledStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	settingsDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)
}

// FormatError returns a styled error message with additional context.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("⚠ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case errors.IsAuthError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: check GEMINI_API_KEY"))
	case errors.IsRateLimitError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: usage limit reached, try again later"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: check your internet connection"))
	case errors.IsPermissionDenied(err):
		sb.WriteString(dimStyle.Render("\n  Hint: check the recorder command in the config file"))
	}

	return sb.String()
}

// PrintError prints a styled error message.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
