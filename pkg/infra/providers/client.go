package providers

import (
	"context"
	"strings"
)

type Config struct {
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Prompt is one completion request. ImageBase64 optionally carries a
// screenshot, either as a bare base64 payload or a full data URL.
type Prompt struct {
	Text        string
	ImageBase64 string
}

// ImageDataURL normalizes the screenshot payload to the data URL form that
// vision endpoints accept.
func (p Prompt) ImageDataURL() string {
	if p.ImageBase64 == "" {
		return ""
	}
	if strings.HasPrefix(p.ImageBase64, "data:") {
		return p.ImageBase64
	}
	return "data:image/jpeg;base64," + p.ImageBase64
}

// ImagePayload returns the bare base64 payload without any data URL prefix.
func (p Prompt) ImagePayload() string {
	if idx := strings.Index(p.ImageBase64, "base64,"); idx >= 0 {
		return p.ImageBase64[idx+len("base64,"):]
	}
	return p.ImageBase64
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client is a completion backend capable of text and vision prompts.
type Client interface {
	Ask(ctx context.Context, config *Config, prompt Prompt) (*CompletionResponse, error)
}
