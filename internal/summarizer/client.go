package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/orchids/social-analytics/internal/config"
	"github.com/orchids/social-analytics/internal/engine"
	"github.com/orchids/social-analytics/pkg/logger"
)

type summaryRequest struct {
	Inputs string `json:"inputs"`
}

type summaryResponse struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment,omitempty"`
}

// Client talks to the external summarization API. The collaborator is
// unreliable by contract: callers must treat every error as a neutral
// signal, and the hard client timeout keeps a slow upstream from
// stalling report generation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(cfg config.SummarizerConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

func (c *Client) Summarize(ctx context.Context, text string) (*engine.SummaryResult, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("summarizer is not configured")
	}

	body, err := json.Marshal(summaryRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "summarizer call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("summarizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summarizer returned status %d", resp.StatusCode)
	}

	var parsed summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode summary response: %w", err)
	}

	return &engine.SummaryResult{
		Summary:   parsed.Summary,
		Sentiment: parsed.Sentiment,
	}, nil
}
