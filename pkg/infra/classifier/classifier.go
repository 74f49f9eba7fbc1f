package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/safenest/safenest/pkg/domain/moderation"
	"github.com/safenest/safenest/pkg/infra/metrics"
	"github.com/safenest/safenest/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 500
	defaultMaxFailures = 5
	defaultCooldown    = 30 * time.Second
)

// Input is the activity context submitted for classification.
type Input struct {
	ContentTitle       string
	ContentDescription string
	AppName            string
	ContentURL         string
	Kind               string
	Screenshot         string // base64 payload or data URL, optional
}

// FallbackText is the text the keyword scorer operates on: title,
// description and app name concatenated.
func (in Input) FallbackText() string {
	return fmt.Sprintf("%s %s %s", in.ContentTitle, in.ContentDescription, in.AppName)
}

//go:generate mockery --name=Classifier --dir=. --output=./mocks --filename=classifier_mock.go --case=underscore --with-expecter

// Classifier scores an observation. Classify always succeeds: any provider or
// parsing failure is recovered internally via the keyword fallback, so the
// moderation engine always receives a usable score set.
type Classifier interface {
	Classify(ctx context.Context, input Input) moderation.Scores
}

type Config struct {
	Provider           string
	APIKey             string
	Model              string
	MaxTokens          int
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerCooldown    time.Duration
}

type visionClassifier struct {
	client   providers.Client
	config   Config
	breaker  CircuitBreaker
	fallback *KeywordScorer
	logger   *logrus.Logger
}

func NewVisionClassifier(config Config, client providers.Client, logger *logrus.Logger) Classifier {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.BreakerMaxFailures == 0 {
		config.BreakerMaxFailures = defaultMaxFailures
	}
	if config.BreakerCooldown == 0 {
		config.BreakerCooldown = defaultCooldown
	}
	return &visionClassifier{
		client:   client,
		config:   config,
		breaker:  NewCircuitBreaker("classifier", config.BreakerCooldown, config.BreakerMaxFailures),
		fallback: NewKeywordScorer(),
		logger:   logger,
	}
}

func (c *visionClassifier) Classify(ctx context.Context, input Input) moderation.Scores {
	scores, err := c.classify(ctx, input)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"title": input.ContentTitle,
			"kind":  input.Kind,
		}).Warn("classifier unavailable, using keyword fallback")
		metrics.ClassificationsTotal.WithLabelValues(metrics.SourceFallback).Inc()
		scores = c.fallback.Score(input.FallbackText())
	} else {
		metrics.ClassificationsTotal.WithLabelValues(metrics.SourceModel).Inc()
	}

	scores.Finalize()
	if scores.Flagged {
		metrics.FlaggedTotal.Inc()
	}
	return scores
}

// classify performs the single model attempt. No retries: fallback
// substitutes for retry, keeping latency and classifier cost bounded.
func (c *visionClassifier) classify(ctx context.Context, input Input) (moderation.Scores, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	prompt := providers.Prompt{
		Text:        buildPrompt(input),
		ImageBase64: input.Screenshot,
	}
	providerConfig := &providers.Config{
		APIKey:    c.config.APIKey,
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
	}

	var completion *providers.CompletionResponse
	err := c.breaker.Execute(func() error {
		var askErr error
		completion, askErr = c.client.Ask(ctx, providerConfig, prompt)
		return askErr
	})
	if err != nil {
		return moderation.Scores{}, err
	}

	scores, err := parseScores(completion.Response)
	if err != nil {
		return moderation.Scores{}, fmt.Errorf("invalid classifier response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"summary": scores.Summary,
		"flagged": scores.Flagged,
		"model":   completion.Model,
	}).Info("content analysis completed")

	return scores, nil
}

func buildPrompt(input Input) string {
	var b strings.Builder
	b.WriteString("You are a parental control AI assistant. Analyze this screenshot from a child's device and determine if the content is appropriate for children.\n\n")
	fmt.Fprintf(&b, "Content Title: %s\n", input.ContentTitle)
	fmt.Fprintf(&b, "Content URL: %s\n", input.ContentURL)
	fmt.Fprintf(&b, "Activity Type: %s\n\n", input.Kind)
	b.WriteString("Rate the following categories from 0 to 1 (0 = safe, 1 = highly inappropriate):\n")
	b.WriteString("1. Violence level (weapons, fighting, blood, gore, etc.)\n")
	b.WriteString("2. Adult content (sexual content, nudity, suggestive content, etc.)\n")
	b.WriteString("3. General inappropriateness (drugs, profanity, dangerous activities, gambling, etc.)\n\n")
	b.WriteString("Respond ONLY with valid JSON (no markdown, no code blocks):\n")
	b.WriteString(`{
  "violenceScore": <number 0-1>,
  "adultContentScore": <number 0-1>,
  "inappropriateScore": <number 0-1>,
  "detectedCategories": [<array of concerning elements found>],
  "summary": "<brief 1-2 sentence explanation of what you see>",
  "confidence": <number 0-1>,
  "flagged": <boolean - true if any score > 0.5>,
  "reason": "<if flagged, explain why>"
}`)
	return b.String()
}
