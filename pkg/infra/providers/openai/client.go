package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/safenest/safenest/pkg/infra/providers"
)

const defaultModel = openai.ChatModelGPT4o

type client struct {
	clientPool *sync.Map
}

func NewOpenaiClient() providers.Client {
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

	openaiClient := c.getOrCreateClient(config.APIKey)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt.Text),
	}
	if url := prompt.ImageDataURL(); url != "" {
		// Low detail keeps vision token usage down; screenshots are
		// classified, not transcribed.
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    url,
			Detail: "low",
		}))
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}
	if config.Temperature > 0 {
		params.Temperature = openai.Float(config.Temperature)
	}

	resp, err := openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	return &providers.CompletionResponse{
		ID:       resp.ID,
		Model:    resp.Model,
		Response: resp.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey string) openai.Client {
	if cached, ok := c.clientPool.Load(apiKey); ok {
		if cl, ok := cached.(openai.Client); ok {
			return cl
		}
	}
	cl := openai.NewClient(option.WithAPIKey(apiKey))
	c.clientPool.Store(apiKey, cl)
	return cl
}
