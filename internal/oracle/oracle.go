// Package oracle assigns a bird category from quiz answers using an
// OpenAI-compatible chat completion endpoint.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/models"
)

// ErrNotConfigured is returned when no LLM API key was provided.
var ErrNotConfigured = errors.New("oracle is not configured")

// Tallier reports the current number of registrations per category.
type Tallier interface {
	Tally(ctx context.Context) map[string]int
}

type Classifier struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	configured  bool
	tally       Tallier
	logger      *logrus.Logger
}

// NewClassifier creates a Classifier. tally may be nil.
func NewClassifier(cfg config.LLMConfig, tally Tallier, logger *logrus.Logger, opts ...option.RequestOption) *Classifier {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	return &Classifier{
		client:      openai.NewClient(append(base, opts...)...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		configured:  cfg.APIKey != "",
		tally:       tally,
		logger:      logger,
	}
}

// Categorize returns one of models.BirdCategories for the given answers.
func (c *Classifier) Categorize(ctx context.Context, answers []models.Answer) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	ctx, span := middleware.StartSpan(ctx, "oracle.categorize")
	defer span.End()

	var flocks map[string]int
	if c.tally != nil {
		flocks = c.tally.Tally(ctx)
	}

	prompt := buildPrompt(answers, flocks)

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	metrics.RecordUpstreamCall("llm", "chat_completion", err, time.Since(start))
	if err != nil {
		middleware.RecordError(span, err)
		return "", fmt.Errorf("oracle request failed: %w", err)
	}

	raw := ""
	if len(resp.Choices) > 0 {
		raw = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	category := models.NormalizeBirdCategory(raw)

	middleware.AddSpanAttributes(span, map[string]interface{}{
		"oracle.model":    c.model,
		"oracle.category": category,
		"oracle.balanced": len(flocks) > 0,
	})

	if category != raw {
		c.logger.WithFields(logrus.Fields{
			"raw":      raw,
			"category": category,
		}).Info("Oracle answer normalised")
	}

	return category, nil
}
