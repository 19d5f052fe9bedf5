package models

// Request types for models/{model}:generateContent

// InlineData is a base64 media part
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part is one element of a turn: either text or inline media
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// Content is one turn sent to the model
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateRequest is the request body
type GenerateRequest struct {
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
	Contents          []Content `json:"contents"`
}

// TextPart builds a text part
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart builds an inline media part from raw base64 data
func InlinePart(mimeType, data string) Part {
	return Part{InlineData: &InlineData{MimeType: mimeType, Data: data}}
}
