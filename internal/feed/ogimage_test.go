package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractOGImage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"og image",
			`<html><head><meta property="og:image" content="https://cdn.example.com/og.jpg"></head></html>`,
			"https://cdn.example.com/og.jpg",
		},
		{
			"attribute order flipped",
			`<html><head><meta content="https://cdn.example.com/flip.jpg" property="og:image"></head></html>`,
			"https://cdn.example.com/flip.jpg",
		},
		{
			"twitter image fallback",
			`<html><head><meta name="twitter:image" content="https://cdn.example.com/tw.jpg"></head></html>`,
			"https://cdn.example.com/tw.jpg",
		},
		{
			"twitter image as property",
			`<html><head><meta property="twitter:image" content="https://cdn.example.com/twp.jpg"></head></html>`,
			"https://cdn.example.com/twp.jpg",
		},
		{
			"og image outranks twitter",
			`<html><head>
			   <meta name="twitter:image" content="https://cdn.example.com/tw.jpg">
			   <meta property="og:image" content="https://cdn.example.com/og.jpg">
			 </head></html>`,
			"https://cdn.example.com/og.jpg",
		},
		{
			"no social tags",
			`<html><head><title>Plain</title></head><body></body></html>`,
			"",
		},
		{
			"empty content ignored",
			`<html><head><meta property="og:image" content=""></head></html>`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractOGImage(docFromHTML(t, tt.html)))
		})
	}
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/with-image":
			_, _ = w.Write([]byte(`<html><head><meta property="og:image" content="https://cdn.example.com/probe.jpg"></head></html>`))
		case "/without-image":
			_, _ = w.Write([]byte(`<html><head><title>None</title></head></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	prober := NewOGImageProber(nil, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("finds image", func(t *testing.T) {
		got, err := prober.Probe(context.Background(), server.URL+"/with-image")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/probe.jpg", got)
	})

	t.Run("miss is empty, not an error", func(t *testing.T) {
		got, err := prober.Probe(context.Background(), server.URL+"/without-image")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-200 is a miss", func(t *testing.T) {
		got, err := prober.Probe(context.Background(), server.URL+"/gone")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
