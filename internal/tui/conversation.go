package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/damyar/vetchat/internal/models"
	"github.com/damyar/vetchat/internal/render"
)

var persianDigits = []rune("۰۱۲۳۴۵۶۷۸۹")

// PersianDigits replaces ASCII digits with Extended Arabic-Indic ones.
func PersianDigits(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(persianDigits[r-'0'])
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FormatTimestamp renders t as a Persian-locale HH:MM clock.
func FormatTimestamp(t time.Time) string {
	return PersianDigits(t.Format("15:04"))
}

// Conversation renders stored messages as bubbles. Rendered markdown is
// cached per message since messages never change once stored.
type Conversation struct {
	opts  render.Options
	cache map[string]string
	width int
}

// NewConversation creates a renderer with the given markdown options
func NewConversation(opts render.Options) *Conversation {
	return &Conversation{
		opts:  opts,
		cache: make(map[string]string),
	}
}

// SetWidth sets the bubble width and drops cached output when it changes
func (c *Conversation) SetWidth(width int) {
	if width == c.width {
		return
	}
	c.width = width
	c.cache = make(map[string]string)
}

// Render returns all messages in insertion order
func (c *Conversation) Render(messages []models.Message) string {
	var content strings.Builder
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(c.RenderMessage(msg))
		content.WriteString("\n")
	}
	return content.String()
}

// RenderMessage renders one bubble: label, attachment indicators, body and time.
func (c *Conversation) RenderMessage(msg models.Message) string {
	if out, ok := c.cache[msg.ID]; ok && msg.ID != "" {
		return out
	}

	bubbleWidth := c.width
	if bubbleWidth < render.MinWidth {
		bubbleWidth = render.MinWidth
	}

	var body []string
	if msg.Image != nil {
		body = append(body, attachmentStyle.Render(imageIndicator(msg.Image)))
	}
	if msg.Audio != nil {
		body = append(body, attachmentStyle.Render(audioIndicator(msg.Audio)))
	}
	if msg.Text != "" {
		if msg.IsUser() {
			body = append(body, msg.Text)
		} else {
			body = append(body, render.Reply(msg.Text, c.opts.WithWidth(bubbleWidth-4)))
		}
	}
	body = append(body, timestampStyle.Render(FormatTimestamp(msg.Timestamp)))

	inner := strings.Join(body, "\n")

	var out string
	switch {
	case msg.IsUser():
		label := userLabelStyle.Render("● " + models.UserLabel)
		out = label + "\n" + userBubbleStyle.Width(bubbleWidth).Render(inner)
	case msg.Failed:
		label := assistantLabelStyle.Render("✚ "+models.ModelLabel) + " " + errorStyle.Render("⚠")
		out = label + "\n" + failedBubbleStyle.Width(bubbleWidth).Render(inner)
	default:
		label := assistantLabelStyle.Render("✚ " + models.ModelLabel)
		out = label + "\n" + assistantBubbleStyle.Width(bubbleWidth).Render(inner)
	}

	if msg.ID != "" {
		c.cache[msg.ID] = out
	}
	return out
}

func imageIndicator(p *models.Payload) string {
	parts := []string{"🖼 " + models.ImageAttachedText}
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	parts = append(parts, fmt.Sprintf("%s, %s", p.MIMEType, humanize.Bytes(uint64(p.Size()))))
	return strings.Join(parts, " · ")
}

func audioIndicator(p *models.Payload) string {
	return fmt.Sprintf("🎙 %s · %s", models.AudioAttachedText, humanize.Bytes(uint64(p.Size())))
}

// renderWelcome centres the greeting when only it is on screen
func renderWelcome(width, height int) string {
	title := titleStyle.Width(width).Align(lipgloss.Center).Render("✚ " + models.AppTitle)
	content := lipgloss.JoinVertical(lipgloss.Center, "", title, "")

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}
