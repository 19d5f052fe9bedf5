package models

import "strings"

// Turn is a new user turn as handed to the model gateway.
// Attachments travel as self-describing data URLs.
type Turn struct {
	Text      string
	Image     string // data URL, "" when absent
	Audio     string // data URL, "" when absent
	AudioMIME string
}

// IsEmpty reports whether the turn carries nothing to send
func (t Turn) IsEmpty() bool {
	return strings.TrimSpace(t.Text) == "" && t.Image == "" && t.Audio == ""
}

// Reply is the gateway's answer. Text is always set; Err records why
// Text is a substitute rather than a model answer.
type Reply struct {
	Text string
	Err  error
}
