package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrTimeout marks a fetch that exceeded its deadline. The orchestrator
// skips the source and continues the cycle.
var ErrTimeout = errors.New("fetch timed out")

// HTTPStatusError is returned for non-2xx feed responses.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// maxFeedBytes bounds the body read so a misbehaving feed host cannot
// exhaust memory.
const maxFeedBytes = 10 << 20

// Fetcher retrieves raw feed documents over HTTP with a bounded timeout
// and a custom user agent. It performs no retries; retry policy belongs
// to the orchestrator.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewFetcher wires an HTTP client; a nil client gets a plain default.
func NewFetcher(client *http.Client, userAgent string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{client: client, userAgent: userAgent, timeout: timeout, logger: logger}
}

// Fetch downloads one feed document. The URL must be absolute; network
// failures, timeouts, and non-2xx statuses come back as typed errors and
// never panic or hang past the deadline.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("invalid feed url %q", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", parsed.Host, ErrTimeout)
		}
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", parsed.Host, ErrTimeout)
		}
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	if f.logger != nil {
		f.logger.Debug("fetched feed", "url", parsed.String(), "bytes", len(body))
	}
	return body, nil
}
