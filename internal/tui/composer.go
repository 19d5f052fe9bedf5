package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/damyar/vetchat/internal/chat"
	"github.com/damyar/vetchat/internal/models"
)

// Composer holds the pending user turn: text, an image and a finished recording.
type Composer struct {
	textarea textarea.Model
	image    *models.Payload
	audio    *models.Payload
}

// NewComposer creates an empty, focused composer
func NewComposer() Composer {
	ta := textarea.New()
	ta.Placeholder = models.InputPlaceholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	// enter submits, so newlines move to alt+enter and ctrl+j
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	return Composer{textarea: ta}
}

// Text returns the pending text
func (c Composer) Text() string {
	return c.textarea.Value()
}

// SetText replaces the pending text
func (c *Composer) SetText(text string) {
	c.textarea.SetValue(text)
}

// Image returns the pending image, if any
func (c Composer) Image() *models.Payload {
	return c.image
}

// Audio returns the pending recording, if any
func (c Composer) Audio() *models.Payload {
	return c.audio
}

// SetImage replaces the pending image
func (c *Composer) SetImage(p *models.Payload) {
	c.image = p
}

// SetAudio replaces the pending recording
func (c *Composer) SetAudio(p *models.Payload) {
	c.audio = p
}

// RemoveImage drops the pending image, keeping the text and any recording
func (c *Composer) RemoveImage() {
	c.image = nil
}

// RemoveAudio drops the pending recording, keeping the text and any image
func (c *Composer) RemoveAudio() {
	c.audio = nil
}

// HasContent reports whether there is non-blank text or any attachment
func (c Composer) HasContent() bool {
	return strings.TrimSpace(c.textarea.Value()) != "" || c.image != nil || c.audio != nil
}

// Submit packages the pending turn and clears the composer. It is a no-op
// returning false when there is nothing to send or a reply is pending.
// Text is handed over as typed; blank text next to an attachment is dropped.
func (c *Composer) Submit(loading bool) (chat.Submission, bool) {
	if loading || !c.HasContent() {
		return chat.Submission{}, false
	}
	text := c.textarea.Value()
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	sub := chat.Submission{
		Text:  text,
		Image: c.image,
		Audio: c.audio,
	}
	c.Clear()
	return sub, true
}

// Clear resets text and attachments
func (c *Composer) Clear() {
	c.textarea.Reset()
	c.image = nil
	c.audio = nil
}

// SetWidth resizes the text input
func (c *Composer) SetWidth(width int) {
	c.textarea.SetWidth(width)
}

// Update forwards key input to the text area
func (c Composer) Update(msg tea.Msg) (Composer, tea.Cmd) {
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

// Chips renders the pending attachments and the recording state
func (c Composer) Chips(recording bool, recordedBytes int64) string {
	var chips []string
	if c.image != nil {
		label := "🖼 " + models.ImageAttachedText
		if c.image.Name != "" {
			label += ": " + c.image.Name
		}
		chips = append(chips, chipStyle.Render(label))
	}
	if c.audio != nil {
		chips = append(chips, chipStyle.Render(fmt.Sprintf("🎙 %s (%s)", models.AudioPendingText, humanize.Bytes(uint64(c.audio.Size())))))
	}
	if recording {
		chips = append(chips, recordingStyle.Render(fmt.Sprintf("● %s %s", models.RecordingText, humanize.Bytes(uint64(recordedBytes)))))
	}
	if len(chips) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, chips...)
}

// View renders the label, chips and text area
func (c Composer) View(recording bool, recordedBytes int64) string {
	rows := []string{inputLabelStyle.Render(models.UserLabel)}
	if chips := c.Chips(recording, recordedBytes); chips != "" {
		rows = append(rows, chips)
	}
	rows = append(rows, c.textarea.View())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
