package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxHeadBytes caps how much of the article page is read; og:image meta
// tags live in <head>, so 150KB is plenty.
const maxHeadBytes = 150 * 1024

// OGImageProber fetches an article page and extracts its og:image (or
// twitter:image) meta tag. Used only when the feed entry carried no image;
// a miss is an empty string, and callers treat errors as misses too.
type OGImageProber struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

// NewOGImageProber wires an HTTP client; a nil client gets a default
// that follows redirects.
func NewOGImageProber(client *http.Client, timeout time.Duration, logger *slog.Logger) *OGImageProber {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &OGImageProber{
		client:    client,
		timeout:   timeout,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		logger:    logger,
	}
}

// Probe fetches the page head and returns the first og:image or
// twitter:image URL, or empty when none is present.
func (p *OGImageProber) Probe(ctx context.Context, articleURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxHeadBytes))
	if err != nil {
		return "", fmt.Errorf("parse article page: %w", err)
	}

	image := ExtractOGImage(doc)
	if image != "" && p.logger != nil {
		p.logger.Debug("resolved og:image", "url", articleURL)
	}
	return image, nil
}

// ExtractOGImage pulls the social-preview image from a parsed document:
// og:image first, then twitter:image.
func ExtractOGImage(doc *goquery.Document) string {
	selectors := []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
		`meta[property="twitter:image"]`,
	}
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && content != "" {
			return content
		}
	}
	return ""
}
