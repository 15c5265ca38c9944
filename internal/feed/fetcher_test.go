package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(timeout time.Duration) *Fetcher {
	return NewFetcher(nil, "NewsSiftBot/1.0 (+https://nooz.news)", timeout, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchSuccess(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	body, err := newTestFetcher(5*time.Second).Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "<rss></rss>", string(body))
	assert.Equal(t, "NewsSiftBot/1.0 (+https://nooz.news)", gotUserAgent)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestFetcher(5*time.Second).Fetch(context.Background(), server.URL)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := newTestFetcher(5*time.Second).Fetch(context.Background(), server.URL)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestFetcher(50*time.Millisecond).Fetch(context.Background(), server.URL)

	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestFetchInvalidURL(t *testing.T) {
	f := newTestFetcher(time.Second)

	_, err := f.Fetch(context.Background(), "not-a-url")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "/relative")
	assert.Error(t, err)
}

func TestFetchRespectsCallerContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestFetcher(10*time.Second).Fetch(ctx, server.URL)
	assert.Error(t, err)
}
