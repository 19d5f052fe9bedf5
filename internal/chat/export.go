package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/damyar/vetchat/internal/models"
)

// ExportOptions configures a transcript export
type ExportOptions struct {
	Model string
	// Now stamps the header; zero means time.Now
	Now time.Time
}

// ExportMarkdown renders the conversation as a Markdown transcript, one
// section per turn. Attachments appear as notes, never as their bytes.
func ExportMarkdown(messages []models.Message, opts ExportOptions) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(models.AppTitle)
	sb.WriteString("\n\n")

	if opts.Model != "" {
		sb.WriteString("**Model:** ")
		sb.WriteString(opts.Model)
		sb.WriteString("\n")
	}
	sb.WriteString("**Exported:** ")
	sb.WriteString(now.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(messages)))
	sb.WriteString("\n\n> ")
	sb.WriteString(models.Disclaimer)
	sb.WriteString("\n\n---\n\n")

	for i, msg := range messages {
		role := models.ModelLabel
		if msg.IsUser() {
			role = models.UserLabel
		}

		sb.WriteString("## ")
		if msg.Failed {
			sb.WriteString("⚠ ")
		}
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		if msg.Image != nil {
			sb.WriteString(fmt.Sprintf("_🖼 %s%s_\n\n", models.ImageAttachedText, attachmentNote(msg.Image)))
		}
		if msg.Audio != nil {
			sb.WriteString(fmt.Sprintf("_🎙 %s%s_\n\n", models.AudioAttachedText, attachmentNote(msg.Audio)))
		}

		if msg.Text != "" {
			sb.WriteString(msg.Text)
			sb.WriteString("\n")
		}

		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

func attachmentNote(p *models.Payload) string {
	parts := []string{humanize.Bytes(uint64(p.Size()))}
	if p.Name != "" {
		parts = append([]string{p.Name}, parts...)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// TranscriptFileName names a transcript by its export time
func TranscriptFileName(t time.Time) string {
	return "vetchat-" + t.Format("20060102-150405") + ".md"
}

// SaveTranscript writes the Markdown transcript into dir and returns its path
func SaveTranscript(dir string, messages []models.Message, opts ExportOptions) (string, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, TranscriptFileName(opts.Now))
	if err := os.WriteFile(path, []byte(ExportMarkdown(messages, opts)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
