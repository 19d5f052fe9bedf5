package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/damyar/vetchat/internal/models"
)

// ContentGenerator sends a prepared request to the model
type ContentGenerator interface {
	GenerateContent(ctx context.Context, request *models.GenerateRequest) (string, error)
}

// Gateway turns a conversation into one model request and always produces reply text.
type Gateway struct {
	client            ContentGenerator
	systemInstruction string
	noAnswerText      string
	failureText       string
	logger            *slog.Logger
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithSystemInstruction replaces the persona instruction
func WithSystemInstruction(instruction string) GatewayOption {
	return func(g *Gateway) {
		g.systemInstruction = instruction
	}
}

// WithGatewayLogger sets the logger for failed calls
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates a Gateway over client
func NewGateway(client ContentGenerator, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		client:            client,
		systemInstruction: models.SystemInstruction,
		noAnswerText:      models.NoAnswerText,
		failureText:       models.FailureText,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildRequest maps prior messages to text-only turns and appends the new
// multi-part user turn: image, then audio, then text.
func (g *Gateway) BuildRequest(turn models.Turn, history []models.Message) *models.GenerateRequest {
	contents := make([]models.Content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, models.Content{
			Role:  string(msg.Role),
			Parts: []models.Part{models.TextPart(msg.Text)},
		})
	}

	var parts []models.Part
	if turn.Image != "" {
		parts = append(parts, models.InlinePart(models.ImageMIMEType, models.StripDataURLPrefix(turn.Image)))
	}
	if turn.Audio != "" {
		mimeType := turn.AudioMIME
		if mimeType == "" {
			mimeType = models.DefaultAudioMIMEType
		}
		parts = append(parts, models.InlinePart(mimeType, models.StripDataURLPrefix(turn.Audio)))
	}
	if strings.TrimSpace(turn.Text) != "" {
		parts = append(parts, models.TextPart(turn.Text))
	}

	contents = append(contents, models.Content{
		Role:  string(models.RoleUser),
		Parts: parts,
	})

	req := &models.GenerateRequest{Contents: contents}
	if g.systemInstruction != "" {
		req.SystemInstruction = &models.Content{
			Parts: []models.Part{models.TextPart(g.systemInstruction)},
		}
	}
	return req
}

// Reply sends the turn with its history. It never fails: an empty answer
// becomes the no-answer text and any failure becomes the failure text,
// with the cause kept in Reply.Err.
func (g *Gateway) Reply(ctx context.Context, turn models.Turn, history []models.Message) (reply models.Reply) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("gateway panic: %v", r)
			g.logger.Error("model request failed", "error", err)
			reply = models.Reply{Text: g.failureText, Err: err}
		}
	}()

	text, err := g.client.GenerateContent(ctx, g.BuildRequest(turn, history))
	if err != nil {
		g.logger.Error("model request failed",
			"error", err,
			"history", len(history),
			"duration", time.Since(start).Round(time.Millisecond),
		)
		return models.Reply{Text: g.failureText, Err: err}
	}

	g.logger.Debug("model replied",
		"chars", len(text),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if text == "" {
		return models.Reply{Text: g.noAnswerText}
	}
	return models.Reply{Text: text}
}
