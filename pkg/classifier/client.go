// Package classifier provides a client for a hosted text-classification model
// that scores a fixed set of emotion labels.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"maternal-companion-go/internal/config"
	"maternal-companion-go/pkg/log"
)

// ErrMalformedResponse is returned when the endpoint answers with a body that
// does not contain label scores.
var ErrMalformedResponse = errors.New("malformed classification response")

// LabelScore is one label with its confidence.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client defines the interface for a classification client.
type Client interface {
	Classify(ctx context.Context, text string) ([]LabelScore, error)
}

type inferenceClient struct {
	cfg    config.ClassifierConfig
	client *http.Client
}

// NewClient creates a client for a Hugging Face Inference API compatible
// endpoint: POST {base_url}/models/{model}.
func NewClient(cfg config.ClassifierConfig) Client {
	return &inferenceClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters,omitempty"`
}

type classifyParameters struct {
	TopK int `json:"top_k,omitempty"`
}

// Classify returns the score of every label for text.
func (c *inferenceClient) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	reqBytes, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{TopK: c.cfg.TopK},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call classification api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read classification response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classification api returned non-200 status: %s, body: %s", resp.Status, string(body))
	}

	scores, err := decodeScores(body)
	if err != nil {
		return nil, err
	}
	log.Debugw("classification received", "model", c.cfg.Model, "labels", len(scores))
	return scores, nil
}

// decodeScores accepts both [[{label,score}...]] (batched) and [{label,score}...].
func decodeScores(body []byte) ([]LabelScore, error) {
	var nested [][]LabelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []LabelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, truncate(string(body), 200))
}

// Top returns the label with the highest score. ok is false for an empty slice.
func Top(scores []LabelScore) (LabelScore, bool) {
	if len(scores) == 0 {
		return LabelScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
