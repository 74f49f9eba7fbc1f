package anthropic

import (
	"context"
	"fmt"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/safenest/safenest/pkg/infra/providers"
)

const defaultMaxTokens = 1024

type client struct {
	clientPool *sync.Map
}

func NewAnthropicClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt providers.Prompt,
) (*providers.CompletionResponse, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	anthropicClient := c.getOrCreateClient(config.APIKey)

	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(prompt.Text),
	}
	if payload := prompt.ImagePayload(); payload != "" {
		blocks = append(blocks, anthropic.NewImageBlockBase64("image/jpeg", payload))
	}

	model := anthropic.ModelClaudeSonnet4_0
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}

	maxTokens := int64(config.MaxTokens)
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		MaxTokens: maxTokens,
	}
	if config.Temperature > 0 {
		params.Temperature = anthropic.Float(config.Temperature)
	}

	resp, err := anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no completion content returned")
	}

	return &providers.CompletionResponse{
		ID:       resp.ID,
		Model:    string(resp.Model),
		Response: text,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey string) anthropic.Client {
	if cached, ok := c.clientPool.Load(apiKey); ok {
		if cl, ok := cached.(anthropic.Client); ok {
			return cl
		}
	}
	cl := anthropic.NewClient(option.WithAPIKey(apiKey))
	c.clientPool.Store(apiKey, cl)
	return cl
}
