package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

const (
	maxResponseSize  = 16 * 1024 * 1024
	maxErrorBodySize = 4096
)

// GJSON paths into a generateContent response
const (
	PathCandidateParts = "candidates.0.content.parts"
	PathFinishReason   = "candidates.0.finishReason"
	PathBlockReason    = "promptFeedback.blockReason"
	PathErrorMessage   = "error.message"
	PathErrorStatus    = "error.status"
	PathErrorReason    = "error.details.#.reason"
)

// GenerateContent sends one request and returns the response text.
// An empty string with a nil error means the model answered with no text.
func (c *GeminiClient) GenerateContent(ctx context.Context, request *models.GenerateRequest) (string, error) {
	if request == nil || len(request.Contents) == 0 {
		return "", fmt.Errorf("request has no contents")
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(models.APIKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("generate content", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return "", statusError(resp.StatusCode, endpoint, errorBody)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("read response", endpoint, err)
	}

	text, blockReason, err := parseResponse(body)
	if err != nil {
		return "", err
	}
	if blockReason != "" {
		c.logger.Warn("prompt blocked", "reason", blockReason, "model", c.GetModel())
	} else if text == "" {
		c.logger.Debug("response has no text",
			"finish_reason", gjson.GetBytes(body, PathFinishReason).String(),
			"model", c.GetModel(),
		)
	}
	return text, nil
}

// statusError maps a non-200 response to a typed error
func statusError(status int, endpoint string, body []byte) error {
	message := gjson.GetBytes(body, PathErrorMessage).String()
	if message == "" {
		message = "generate content failed"
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apierrors.NewAuthError(message)
	case status == http.StatusBadRequest && isInvalidKey(body):
		return apierrors.NewAuthError(message)
	case status == http.StatusTooManyRequests:
		return apierrors.NewUsageLimitError(message)
	default:
		return apierrors.NewAPIErrorWithBody(status, endpoint, message, string(body))
	}
}

func isInvalidKey(body []byte) bool {
	for _, reason := range gjson.GetBytes(body, PathErrorReason).Array() {
		if reason.String() == "API_KEY_INVALID" {
			return true
		}
	}
	return false
}

// parseResponse extracts the primary text: the text parts of the first
// candidate, thought summaries excluded. A prompt blocked by the safety
// filters has no candidates; it yields empty text and the block reason.
func parseResponse(body []byte) (text, blockReason string, err error) {
	if !gjson.ValidBytes(body) {
		return "", "", apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	parts := parsed.Get(PathCandidateParts)
	if !parts.Exists() {
		return "", parsed.Get(PathBlockReason).String(), nil
	}
	if !parts.IsArray() {
		return "", "", apierrors.NewParseError("candidate parts is not an array", PathCandidateParts)
	}

	var sb strings.Builder
	parts.ForEach(func(_, part gjson.Result) bool {
		if part.Get("thought").Bool() {
			return true
		}
		sb.WriteString(part.Get("text").String())
		return true
	})

	return sb.String(), "", nil
}
