package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"NewsSift/internal/balance"
	"NewsSift/internal/classify"
	"NewsSift/internal/domain"
	"NewsSift/internal/feed"
	"NewsSift/internal/ports"
)

// Settings bounds one ingestion cycle.
type Settings struct {
	Concurrency          int
	BaseQuota            int
	MaxArticlesPerSource int
	MaxContentLength     int
	DistributionWindow   time.Duration
	ProbeImages          bool
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Sources    ports.SourceRepository
	Articles   ports.ArticleRepository
	Stats      ports.StatsRepository
	Fetcher    ports.FeedFetcher
	Parser     ports.FeedParser
	Prober     ports.ImageProber
	Summarizer ports.Summarizer
	Notifier   ports.Notifier
	Classifier *classify.Classifier
	Resolver   *classify.SourceResolver
	Balancer   *balance.Balancer
	Settings   Settings
	Logger     *slog.Logger
}

// CycleOptions narrows one cycle. An empty Category scrapes everything.
type CycleOptions struct {
	Category    domain.Category
	MaxArticles int
}

// SourceResult reports one source's contribution to the cycle.
type SourceResult struct {
	Source        string          `json:"source"`
	Category      domain.Category `json:"category"`
	ArticlesFound int             `json:"articlesFound"`
	ArticlesAdded int             `json:"articlesAdded"`
}

// CycleResult summarizes one ingestion cycle for the trigger caller and
// for operator visibility.
type CycleResult struct {
	Results            []SourceResult          `json:"results"`
	TotalArticlesAdded int                     `json:"totalArticlesAdded"`
	CategoryBreakdown  map[domain.Category]int `json:"categoryBreakdown"`
	DeviationAlert     bool                    `json:"deviationAlert"`
	Recommendations    []string                `json:"recommendations"`
}

// Pipeline drives one ingestion cycle: load distribution, derive quotas,
// fetch and parse sources concurrently, classify, dedup, and accept items
// until quotas run out. Failures isolate per source and per item; one bad
// feed never aborts the batch.
type Pipeline struct {
	sources    ports.SourceRepository
	articles   ports.ArticleRepository
	stats      ports.StatsRepository
	fetcher    ports.FeedFetcher
	parser     ports.FeedParser
	prober     ports.ImageProber
	summarizer ports.Summarizer
	notifier   ports.Notifier
	classifier *classify.Classifier
	resolver   *classify.SourceResolver
	balancer   *balance.Balancer
	settings   Settings
	logger     *slog.Logger

	// summaryWG tracks fire-and-forget summarization goroutines so tests
	// can drain them; production callers never need to wait.
	summaryWG sync.WaitGroup
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	settings := deps.Settings
	if settings.Concurrency <= 0 {
		settings.Concurrency = 5
	}
	if settings.BaseQuota <= 0 {
		settings.BaseQuota = 50
	}
	if settings.MaxArticlesPerSource <= 0 {
		settings.MaxArticlesPerSource = 10
	}
	if settings.MaxContentLength <= 0 {
		settings.MaxContentLength = 50000
	}
	if settings.DistributionWindow <= 0 {
		settings.DistributionWindow = 24 * time.Hour
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		sources:    deps.Sources,
		articles:   deps.Articles,
		stats:      deps.Stats,
		fetcher:    deps.Fetcher,
		parser:     deps.Parser,
		prober:     deps.Prober,
		summarizer: deps.Summarizer,
		notifier:   deps.Notifier,
		classifier: deps.Classifier,
		resolver:   deps.Resolver,
		balancer:   deps.Balancer,
		settings:   settings,
		logger:     logger,
	}
}

// Run executes one ingestion cycle.
func (p *Pipeline) Run(ctx context.Context, opts CycleOptions) (*CycleResult, error) {
	baseQuota := p.settings.BaseQuota
	if opts.MaxArticles > 0 {
		baseQuota = opts.MaxArticles
	}

	counts, err := p.articles.CategoryCounts(ctx, time.Now().Add(-p.settings.DistributionWindow))
	if err != nil {
		return nil, fmt.Errorf("load category counts: %w", err)
	}

	dist := p.balancer.Distribution(counts)
	balanced := p.balancer.Quotas(dist, baseQuota)
	tracker := balance.NewTracker(balanced.Quotas)

	p.logger.Info("cycle quotas computed",
		"totalArticles", balanced.TotalArticles,
		"deviationAlert", balanced.DeviationAlert)
	for _, q := range balanced.Quotas {
		p.logger.Debug("category quota",
			"category", q.Category, "quota", q.Quota,
			"currentRatio", q.CurrentRatio, "priority", q.Priority)
	}

	sources, err := p.sources.ActiveSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active sources: %w", err)
	}

	if opts.Category != "" {
		filtered := sources[:0]
		for _, src := range sources {
			if p.resolver.Resolve(src.Name, src.CategoryHint) == opts.Category {
				filtered = append(filtered, src)
			}
		}
		sources = filtered
	}

	// Underrepresented categories scrape first so their sources see
	// quota before saturated categories consume worker slots.
	priorities := make(map[domain.Category]float64, len(balanced.Quotas))
	for _, q := range balanced.Quotas {
		priorities[q.Category] = q.Priority
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return priorities[p.resolver.Resolve(sources[i].Name, sources[i].CategoryHint)] >
			priorities[p.resolver.Resolve(sources[j].Name, sources[j].CategoryHint)]
	})

	p.logger.Info("scraping sources", "count", len(sources), "category", opts.Category)

	var (
		mu      sync.Mutex
		results []SourceResult
	)

	g := new(errgroup.Group)
	g.SetLimit(p.settings.Concurrency)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			result, ok := p.processSource(ctx, src, dist, tracker)
			if ok {
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	breakdown := tracker.Counts()
	if p.stats != nil {
		if err := p.stats.UpsertScrapeStats(ctx, time.Now(), breakdown); err != nil {
			p.logger.Warn("record scrape stats", "error", err)
		}
	}

	if balanced.DeviationAlert && p.notifier != nil {
		message := "Content mix deviation detected:\n" + strings.Join(balanced.Recommendations, "\n")
		if err := p.notifier.PublishAlert(ctx, message); err != nil {
			p.logger.Warn("publish deviation alert", "error", err)
		}
	}

	total := 0
	for _, r := range results {
		total += r.ArticlesAdded
	}

	p.logger.Info("cycle finished", "sources", len(results), "articlesAdded", total)

	return &CycleResult{
		Results:            results,
		TotalArticlesAdded: total,
		CategoryBreakdown:  breakdown,
		DeviationAlert:     balanced.DeviationAlert,
		Recommendations:    balanced.Recommendations,
	}, nil
}

// processSource fetches, parses, and ingests one source. The second
// return is false when the source was skipped before any work happened
// (invalid URL, category quota already exhausted).
func (p *Pipeline) processSource(ctx context.Context, src domain.Source, dist []balance.CategoryDistribution, tracker *balance.Tracker) (SourceResult, bool) {
	sourceCategory := p.resolver.Resolve(src.Name, src.CategoryHint)
	result := SourceResult{Source: src.Name, Category: sourceCategory}

	if !feed.IsValidArticleURL(src.FeedURL) {
		p.logger.Warn("invalid source url", "source", src.Name, "url", src.FeedURL)
		return result, false
	}

	if sourceCategory != "" && !tracker.HasRemaining(sourceCategory) {
		p.logger.Debug("skipping source, quota reached", "source", src.Name, "category", sourceCategory)
		return result, false
	}

	raw, err := p.fetcher.Fetch(ctx, src.FeedURL)
	if err != nil {
		p.logger.Warn("fetch feed", "source", src.Name, "error", err)
		return result, true
	}

	parsed, err := p.parser.Parse(raw)
	if err != nil {
		p.logger.Warn("parse feed", "source", src.Name, "error", err)
		return result, true
	}

	items := parsed.Items
	if len(items) > p.settings.MaxArticlesPerSource {
		items = items[:p.settings.MaxArticlesPerSource]
	}
	result.ArticlesFound = len(items)

	for _, item := range items {
		if p.processItem(ctx, src, sourceCategory, item, dist, tracker) {
			result.ArticlesAdded++
		}
	}

	if err := p.sources.TouchScraped(ctx, src.ID, time.Now()); err != nil {
		p.logger.Warn("touch source", "source", src.Name, "error", err)
	}

	return result, true
}

// processItem runs one feed entry through classification, quota, and
// dedup, persisting it on acceptance. Returns true only when a new
// article was stored.
func (p *Pipeline) processItem(ctx context.Context, src domain.Source, sourceCategory domain.Category, item domain.FeedItem, dist []balance.CategoryDistribution, tracker *balance.Tracker) bool {
	if !feed.IsValidArticleURL(item.Link) {
		return false
	}
	if len(item.Title) < 5 || len(item.Title) > 500 {
		return false
	}

	exists, err := p.articles.Exists(ctx, item.Link)
	if err != nil {
		p.logger.Warn("dedup check", "link", item.Link, "error", err)
		return false
	}
	if exists {
		return false
	}

	classification := p.classifier.Classify(item.Title, item.Description)
	category := classification.Category
	if sourceCategory != "" {
		// Explicit operator intent beats keyword inference.
		category = sourceCategory
	}

	if !tracker.HasRemaining(category) {
		p.logger.Debug("skipping item, quota reached", "category", category, "link", item.Link)
		return false
	}

	description := truncate(item.Description, p.settings.MaxContentLength)

	summary := description
	if len(description) > 500 {
		summary = truncate(description, 500) + "..."
	}

	publishedAt := time.Now().UTC()
	if item.PubDate != nil {
		publishedAt = item.PubDate.UTC()
	}

	imageURL := item.ImageURL
	if imageURL == "" && p.settings.ProbeImages && p.prober != nil {
		if probed, probeErr := p.prober.Probe(ctx, item.Link); probeErr == nil {
			imageURL = probed
		}
	}

	wordCount := len(strings.Fields(description))
	originalReadTime := readMinutes(wordCount, 200)
	siftedReadTime := (originalReadTime*3 + 9) / 10 // summaries run ~30% of the original
	if siftedReadTime < 1 {
		siftedReadTime = 1
	}

	article := domain.Article{
		ID:                 uuid.NewString(),
		Title:              item.Title,
		Slug:               slugify(item.Title),
		OriginalURL:        item.Link,
		SourceID:           src.ID,
		Category:           category,
		SubCategory:        classification.SubCategory,
		Summary:            summary,
		Author:             truncate(item.Author, 255),
		ImageURL:           imageURL,
		PublishedAt:        publishedAt,
		Status:             domain.StatusPending,
		RankScore:          0.5 + p.balancer.AlignmentScore(category, dist)/200,
		CategoryConfidence: classification.Confidence,
		OriginalReadTime:   originalReadTime,
		SiftedReadTime:     siftedReadTime,
	}

	if err := p.articles.Save(ctx, article); err != nil {
		if errors.Is(err, ports.ErrDuplicateArticle) {
			return false
		}
		p.logger.Warn("save article", "link", item.Link, "error", err)
		return false
	}

	tracker.Record(category)
	p.logger.Info("accepted article", "title", article.Title, "category", category, "source", src.Name)

	if p.summarizer != nil {
		p.triggerSummary(article.ID, description)
	}

	return true
}

// triggerSummary invokes the summarization collaborator without blocking
// the cycle. The call outlives the cycle context on purpose: a finished
// cycle must not cancel summaries already in flight.
func (p *Pipeline) triggerSummary(articleID, content string) {
	p.summaryWG.Add(1)
	go func() {
		defer p.summaryWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := p.summarizer.TriggerSummary(ctx, articleID, content); err != nil {
			p.logger.Warn("trigger summary", "articleId", articleID, "error", err)
		}
	}()
}

// WaitForSummaries blocks until in-flight summarization triggers finish.
func (p *Pipeline) WaitForSummaries() {
	p.summaryWG.Wait()
}

func readMinutes(words, perMinute int) int {
	minutes := (words + perMinute - 1) / perMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// truncate cuts a string to at most limit bytes without splitting a
// multibyte rune; a mid-rune cut would be invalid UTF-8 and rejected by
// the database on insert.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
