// Package flashrank provides a reranker adapter for a FlashRank-compatible
// cross-encoder scoring service.
package flashrank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// Ensure Reranker implements the interface.
var _ driven.Reranker = (*Reranker)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8787"
	DefaultModel   = "ms-marco-MiniLM-L-12-v2"
	DefaultTimeout = 15 * time.Second
)

// Config holds configuration for the rerank service.
type Config struct {
	// BaseURL is the rerank service base URL (default: http://localhost:8787).
	BaseURL string

	// Model is the cross-encoder model to use (default: ms-marco-MiniLM-L-12-v2).
	Model string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Reranker scores query/passage pairs against a cross-encoder service.
type Reranker struct {
	client  *http.Client
	baseURL string
	model   string
}

// rerankRequest is the service request format.
type rerankRequest struct {
	Model    string   `json:"model"`
	Query    string   `json:"query"`
	Passages []string `json:"passages"`
}

// rerankResponse is the service response format. Scores are returned
// in passage order.
type rerankResponse struct {
	Scores []float64 `json:"scores"`
}

// NewReranker creates a new cross-encoder rerank client.
func NewReranker(cfg Config) *Reranker {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Reranker{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Rerank scores each passage for relevance to the query. The returned
// slice is index-aligned with the passages argument.
func (r *Reranker) Rerank(ctx context.Context, query string, passages []string) ([]float64, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	reqBody := rerankRequest{
		Model:    r.model,
		Query:    query,
		Passages: passages,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/rerank",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("rerank error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("rerank error (status %d): %s", resp.StatusCode, string(body))
	}

	var rerankResp rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rerankResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(rerankResp.Scores) != len(passages) {
		return nil, fmt.Errorf("rerank: got %d scores for %d passages", len(rerankResp.Scores), len(passages))
	}

	return rerankResp.Scores, nil
}

// ModelName returns the name of the cross-encoder model being used.
func (r *Reranker) ModelName() string {
	return r.model
}

// Close releases resources.
func (r *Reranker) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
