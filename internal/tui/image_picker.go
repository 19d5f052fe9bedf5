package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/media"
	"github.com/damyar/vetchat/internal/models"
)

// ImagePickerModel browses the filesystem for one image to attach
type ImagePickerModel struct {
	picker filepicker.Model

	// Loaded result
	image *models.Payload
	err   error

	// State
	done      bool
	cancelled bool
}

// NewImagePickerModel creates a picker rooted at dir (the home directory when empty)
func NewImagePickerModel(dir string) ImagePickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = media.ImageExtensions()
	fp.AutoHeight = true
	fp.ShowPermissions = false
	fp.Styles.Selected = fp.Styles.Selected.Foreground(colorPrimary)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(colorAccent)

	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = home
		} else {
			dir = "."
		}
	}
	fp.CurrentDirectory = dir

	return ImagePickerModel{picker: fp}
}

// Init reads the starting directory
func (m ImagePickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles navigation. Selecting a file loads it; a file that is not
// a usable image keeps the picker open with the reason shown.
func (m ImagePickerModel) Update(msg tea.Msg) (ImagePickerModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c", "ctrl+o":
			m.cancelled = true
			m.done = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		image, err := media.LoadImage(path)
		if err != nil {
			m.err = err
			return m, cmd
		}
		m.image = image
		m.err = nil
		m.done = true
		return m, cmd
	}

	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.err = fmt.Errorf("%s: %w", path, apierrors.ErrUnsupportedMedia)
	}

	return m, cmd
}

// View renders the picker panel
func (m ImagePickerModel) View(width int) string {
	rows := []string{
		titleStyle.Render("🖼 " + models.ImagePickerTitle),
		hintStyle.Render(m.picker.CurrentDirectory),
		"",
		m.picker.View(),
	}
	if m.err != nil {
		rows = append(rows, errorStyle.Render(models.ImageRejectedTitle), hintStyle.Render(m.err.Error()))
	}
	rows = append(rows, statusKeyStyle.Render("Enter")+statusDescStyle.Render(" انتخاب")+"  │  "+
		statusKeyStyle.Render("Esc")+statusDescStyle.Render(" انصراف"))

	return pickerPanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Done reports whether the picker has finished, by selection or cancel
func (m ImagePickerModel) Done() bool {
	return m.done
}

// Cancelled reports whether the user closed the picker without choosing
func (m ImagePickerModel) Cancelled() bool {
	return m.cancelled
}

// Image returns the loaded image once a file was chosen
func (m ImagePickerModel) Image() *models.Payload {
	return m.image
}

// Err returns why the last chosen file was rejected
func (m ImagePickerModel) Err() error {
	return m.err
}
