// Package llm provides a client for the hosted generative language model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"maternal-companion-go/internal/config"
	"maternal-companion-go/pkg/log"
)

var (
	// ErrNoAPIKey is returned by NewClient when no credential is configured.
	ErrNoAPIKey = errors.New("gemini api key is not configured")
	// ErrNoCandidates is returned when the model answers without any candidate,
	// e.g. because the prompt was blocked.
	ErrNoCandidates = errors.New("gemini returned no candidates")
)

// Client defines the interface for a single-completion text generator.
type Client interface {
	// Generate sends prompt and returns the text of the first candidate.
	Generate(ctx context.Context, prompt string) (string, error)
	// Model returns the model name used for generation.
	Model() string
}

type geminiClient struct {
	cfg    config.GeminiConfig
	client *genai.Client
}

// NewClient creates a Gemini client. It fails when the API key is missing or
// the SDK client cannot be built; callers treat that as limited mode.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	c, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: c}, nil
}

func (c *geminiClient) Model() string {
	return c.cfg.Model
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), c.generationConfig())
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", ErrNoCandidates
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	log.Debugw("gemini response received", "model", c.cfg.Model, "length", sb.Len())
	return sb.String(), nil
}

// generationConfig only sets parameters that are configured (non-zero).
func (c *geminiClient) generationConfig() *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{}
	if c.cfg.Temperature != 0 {
		gc.Temperature = genai.Ptr(float32(c.cfg.Temperature))
	}
	if c.cfg.MaxOutputTokens != 0 {
		gc.MaxOutputTokens = int32(c.cfg.MaxOutputTokens)
	}
	return gc
}
