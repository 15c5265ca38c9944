package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"NewsSift/internal/config"
	"NewsSift/internal/ports"
)

// Client triggers the external summarization collaborator for accepted
// articles. The pipeline fires these calls and moves on; the collaborator
// later flips the article to published or failed on its own. Calls are
// paced with a rate limiter so bursts of acceptances do not trip the
// provider's rate limits.
type Client struct {
	endpoint         string
	apiKey           string
	minContentLength int
	httpClient       *http.Client
	limiter          *rate.Limiter
}

var _ ports.Summarizer = (*Client)(nil)

// NewClient builds a client from configuration. Pacing allows batchSize
// calls per batch delay window.
func NewClient(cfg config.SummarizerConfig) *Client {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	perSecond := float64(batchSize) / cfg.BatchDelay().Seconds()

	return &Client{
		endpoint:         cfg.Endpoint,
		apiKey:           cfg.APIKey,
		minContentLength: cfg.MinContentLength,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(perSecond), batchSize),
	}
}

// TriggerSummary posts {articleId, content} to the collaborator. Content
// below the minimum length is skipped outright: there is nothing worth
// summarizing and the collaborator would reject it anyway.
func (c *Client) TriggerSummary(ctx context.Context, articleID, content string) error {
	if c.endpoint == "" || c.apiKey == "" {
		return fmt.Errorf("summarizer client misconfigured")
	}
	if len(content) < c.minContentLength {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for summarizer slot: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"articleId": articleID,
		"content":   content,
	})
	if err != nil {
		return fmt.Errorf("marshal summarize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trigger summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("summarizer error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}
