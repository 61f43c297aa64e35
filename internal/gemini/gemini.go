// Package gemini implements the answer generator on top of the official
// Google Gen AI client. It maps the provider's failure modes onto the
// pipeline's sentinel errors so the orchestrator can treat all providers
// uniformly.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/minbarhq/minbar/internal/agent"
	"github.com/minbarhq/minbar/internal/config"
	"github.com/minbarhq/minbar/internal/log"
)

// Client is a thin wrapper around the official genai client tuned for
// long-form devotional answers.
type Client struct {
	cli    *genai.Client
	model  string
	gen    *genai.GenerateContentConfig
	logger log.Logger
}

// NewClient builds a Gemini-backed generator from the application
// configuration.
func NewClient(ctx context.Context, cfg *config.Config, logger log.Logger) (*Client, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		logger = log.NewNop()
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{
		cli:    cli,
		model:  cfg.ModelName,
		gen:    generateConfig(cfg),
		logger: logger,
	}, nil
}

// generateConfig translates application settings into the provider's
// generation config.
func generateConfig(cfg *config.Config) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		TopP:            genai.Ptr(cfg.TopP),
		TopK:            genai.Ptr(float32(cfg.TopK)),
		MaxOutputTokens: cfg.MaxTokens,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}
}

// Generate sends one prompt and returns the model's text. Failures are
// mapped to the pipeline's sentinel errors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		c.gen,
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", agent.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", agent.ErrUnavailable, err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", agent.ErrBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", agent.ErrEmptyResponse
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: candidate finished with safety reason", agent.ErrBlocked)
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", agent.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		b.WriteString(part.Text)
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", agent.ErrEmptyResponse
	}

	c.logger.Debug("generation completed", "model", c.model, "response_chars", len(text))
	return text, nil
}
