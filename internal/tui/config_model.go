package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/damyar/vetchat/internal/config"
	"github.com/damyar/vetchat/internal/models"
	"github.com/damyar/vetchat/internal/render"
)

// settingKind tells how a menu entry reacts to enter
type settingKind int

const (
	settingToggle settingKind = iota
	settingChoice
	settingExit
)

// setting is one row of the main menu. Choice settings open a sub-list.
type setting struct {
	label   string
	kind    settingKind
	value   func(cfg config.Config) string
	enabled func(cfg config.Config) bool
	toggle  func(cfg *config.Config)
	options func() []string
	apply   func(cfg *config.Config, option string)
}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// settingsMenu lists what the editor can change
func settingsMenu() []setting {
	return []setting{
		{
			label:   "Model",
			kind:    settingChoice,
			value:   func(cfg config.Config) string { return cfg.Model },
			options: config.AvailableModels,
			apply:   func(cfg *config.Config, option string) { cfg.Model = option },
		},
		{
			label:   "Markdown Theme",
			kind:    settingChoice,
			value:   func(cfg config.Config) string { return cfg.Markdown.Style },
			options: render.ThemeNames,
			apply:   func(cfg *config.Config, option string) { cfg.Markdown.Style = option },
		},
		{
			label:   "TUI Theme",
			kind:    settingChoice,
			value:   func(cfg config.Config) string { return cfg.TUITheme },
			options: render.TUIThemeNames,
			apply: func(cfg *config.Config, option string) {
				cfg.TUITheme = option
				render.SetTUITheme(option)
				UpdateTheme()
			},
		},
		{
			label:   "Copy Replies to Clipboard",
			kind:    settingToggle,
			enabled: func(cfg config.Config) bool { return cfg.CopyToClipboard },
			toggle:  func(cfg *config.Config) { cfg.CopyToClipboard = !cfg.CopyToClipboard },
		},
		{
			label:   "Verbose Logging",
			kind:    settingToggle,
			enabled: func(cfg config.Config) bool { return cfg.Verbose },
			toggle:  func(cfg *config.Config) { cfg.Verbose = !cfg.Verbose },
		},
		{
			label: "Exit",
			kind:  settingExit,
		},
	}
}

// ConfigModel is the interactive settings editor
type ConfigModel struct {
	config     config.Config
	configPath string
	logPath    string
	save       func(config.Config) error
	menu       []setting

	// Navigation; open is the index of the choice being picked, or -1
	cursor       int
	open         int
	optionCursor int

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates an editor over cfg. Every change is passed to save.
func NewConfigModel(cfg config.Config, save func(config.Config) error) ConfigModel {
	configPath, _ := config.GetConfigPath()
	logPath := cfg.LogFile
	if logPath == "" {
		if dir, err := config.GetConfigDir(); err == nil {
			logPath = filepath.Join(dir, "vetchat.log")
		}
	}
	if save == nil {
		save = config.SaveConfig
	}

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		logPath:         logPath,
		save:            save,
		menu:            settingsMenu(),
		open:            -1,
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the edited configuration
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.open >= 0 {
				m.open = -1
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// move shifts the active cursor by delta, wrapping around
func (m *ConfigModel) move(delta int) {
	if m.open >= 0 {
		n := len(m.menu[m.open].options())
		m.optionCursor = (m.optionCursor + delta + n) % n
		return
	}
	n := len(m.menu)
	m.cursor = (m.cursor + delta + n) % n
}

// handleSelect acts on the highlighted row and saves any change
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	if m.open >= 0 {
		item := m.menu[m.open]
		option := item.options()[m.optionCursor]
		item.apply(&m.config, option)
		m.open = -1
		return m.persist(fmt.Sprintf("%s set to %s", item.label, option))
	}

	item := m.menu[m.cursor]
	switch item.kind {
	case settingExit:
		return m, tea.Quit

	case settingToggle:
		item.toggle(&m.config)
		state := "disabled"
		if item.enabled(m.config) {
			state = "enabled"
		}
		return m.persist(fmt.Sprintf("%s %s", item.label, state))

	case settingChoice:
		m.open = m.cursor
		m.optionCursor = 0
		current := item.value(m.config)
		for i, option := range item.options() {
			if option == current {
				m.optionCursor = i
				break
			}
		}
	}

	return m, nil
}

func (m ConfigModel) persist(done string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = done
	}
	return m, clearFeedback(m.feedbackTimeout)
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		headerStyle.Width(contentWidth).Render(titleStyle.Render("✦ " + models.AppTitle + " · Settings")),
		settingsPanelStyle.Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("📁 Paths"),
			fmt.Sprintf("   Config: %s", hintStyle.Render(m.configPath)),
			fmt.Sprintf("   Log:    %s", hintStyle.Render(m.logPath)),
		)),
	}

	var body string
	if m.open >= 0 {
		body = m.renderOptions()
	} else {
		body = m.renderMainMenu()
	}
	sections = append(sections, settingsPanelStyle.Width(contentWidth).Render(body))

	if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render("✓ "+m.feedback))
	}
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConfigModel) renderRow(selected bool, text string) string {
	if selected {
		return settingsCursorStyle.Render("▸ ") + settingsSelectedStyle.Render(text)
	}
	return "  " + settingsItemStyle.Render(text)
}

// renderMainMenu renders the settings with their current values
func (m ConfigModel) renderMainMenu() string {
	labelWidth := 0
	for _, item := range m.menu {
		labelWidth = max(labelWidth, lipgloss.Width(item.label))
	}

	rows := []string{titleStyle.Render("⚙ Settings"), ""}
	for i, item := range m.menu {
		if item.kind == settingExit {
			rows = append(rows, "")
			rows = append(rows, m.renderRow(m.cursor == i, item.label))
			continue
		}

		var value string
		switch item.kind {
		case settingToggle:
			value = renderBoolValue(item.enabled(m.config))
		case settingChoice:
			value = settingsValueStyle.Render(item.value(m.config))
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(item.label)+4)
		rows = append(rows, m.renderRow(m.cursor == i, item.label)+pad+value)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderOptions renders the sub-list of the open choice
func (m ConfigModel) renderOptions() string {
	item := m.menu[m.open]
	current := item.value(m.config)

	rows := []string{titleStyle.Render("Select " + item.label), ""}
	for i, option := range item.options() {
		row := m.renderRow(m.optionCursor == i, option)
		if option == current {
			row += settingsEnabledStyle.Render(" (current)")
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderBoolValue renders a boolean value with appropriate styling
func renderBoolValue(value bool) string {
	if value {
		return settingsEnabledStyle.Render("enabled")
	}
	return settingsDisabledStyle.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.open >= 0 {
		back = "Back"
	}
	shortcuts := [][2]string{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s[0])+statusDescStyle.Render(" "+s[1]))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the settings editor and returns the final configuration
func RunConfig(cfg config.Config) (config.Config, error) {
	p := tea.NewProgram(
		NewConfigModel(cfg, config.SaveConfig),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return cfg, err
	}
	if m, ok := final.(ConfigModel); ok {
		return m.Config(), nil
	}
	return cfg, nil
}
