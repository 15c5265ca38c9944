package ports

import (
	"context"
	"errors"
	"time"

	"NewsSift/internal/domain"
)

// ErrDuplicateArticle is returned by ArticleRepository.Save when the
// original URL is already stored. Expected steady-state, not a failure.
var ErrDuplicateArticle = errors.New("article already exists")

// FeedFetcher retrieves raw feed documents over HTTP.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedParser turns raw XML into a normalized feed.
type FeedParser interface {
	Parse(raw []byte) (*domain.ParsedFeed, error)
}

// ImageProber resolves a representative image for an article page when the
// feed entry carries none. A miss is reported as an empty string, not an error.
type ImageProber interface {
	Probe(ctx context.Context, articleURL string) (string, error)
}

// SourceRepository reads admin-managed feed sources.
type SourceRepository interface {
	ActiveSources(ctx context.Context) ([]domain.Source, error)
	TouchScraped(ctx context.Context, sourceID string, at time.Time) error
}

// ArticleRepository persists accepted articles and answers dedup queries.
type ArticleRepository interface {
	Exists(ctx context.Context, originalURL string) (bool, error)
	Save(ctx context.Context, article domain.Article) error
	CategoryCounts(ctx context.Context, since time.Time) (map[domain.Category]int, error)
}

// StatsRepository records per-cycle scrape statistics for operator dashboards.
type StatsRepository interface {
	UpsertScrapeStats(ctx context.Context, date time.Time, counts map[domain.Category]int) error
}

// Summarizer triggers the external summarization collaborator for an
// accepted article. The pipeline never waits for the summary itself.
type Summarizer interface {
	TriggerSummary(ctx context.Context, articleID, content string) error
}

// Notifier pushes operator-facing alerts (content-mix deviations).
type Notifier interface {
	PublishAlert(ctx context.Context, message string) error
}

// Scheduler controls when ingestion cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
