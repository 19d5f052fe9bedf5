package models

import (
	"encoding/base64"
	"strings"
)

// Payload is an encoded attachment (image or audio) with its media type
type Payload struct {
	MIMEType string
	Data     []byte
	Name     string // original file name, if any
}

// NewPayload creates a payload from raw bytes
func NewPayload(mimeType string, data []byte) *Payload {
	return &Payload{MIMEType: mimeType, Data: data}
}

// Size returns the payload length in bytes
func (p *Payload) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}

// DataURL returns the self-describing form: data:<mime>;base64,<data>
func (p *Payload) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// StripDataURLPrefix returns the raw base64 part of a data URL: everything
// after the first comma. Strings without a comma yield "".
func StripDataURLPrefix(s string) string {
	_, data, ok := strings.Cut(s, ",")
	if !ok {
		return ""
	}
	return data
}
