package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"NewsSift/internal/config"
	"NewsSift/internal/domain"
	"NewsSift/internal/ports"
)

const uniqueViolation = "23505"

// PostgresRepository persists sources, articles, and scrape statistics.
type PostgresRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

var (
	_ ports.SourceRepository  = (*PostgresRepository)(nil)
	_ ports.ArticleRepository = (*PostgresRepository)(nil)
	_ ports.StatsRepository   = (*PostgresRepository)(nil)
)

// NewPostgresRepository wires a pgx connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ActiveSources returns scrapeable sources with a feed URL, highest
// operator priority first.
func (r *PostgresRepository) ActiveSources(ctx context.Context) ([]domain.Source, error) {
	query, args, err := r.sb.
		Select("id", "name", "feed_url", "website_url", "is_active", "priority",
			"scrape_interval_minutes", "last_scrape_at", "category_hint", "sub_category_hint").
		From("sources").
		Where(sq.Eq{"is_active": true}).
		Where(sq.NotEq{"feed_url": ""}).
		OrderBy("CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sources query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var (
			src          domain.Source
			lastScrape   *time.Time
			categoryHint *string
			subHint      *string
		)
		if err := rows.Scan(&src.ID, &src.Name, &src.FeedURL, &src.WebsiteURL, &src.IsActive,
			&src.Priority, &src.ScrapeIntervalMinutes, &lastScrape, &categoryHint, &subHint); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		src.LastScrapeAt = lastScrape
		if categoryHint != nil {
			src.CategoryHint = domain.Category(*categoryHint)
		}
		if subHint != nil {
			src.SubCategoryHint = *subHint
		}
		src.ScrapeIntervalMinutes = config.ClampScrapeInterval(src.ScrapeIntervalMinutes)
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}

	return sources, nil
}

// TouchScraped records when a source was last scraped.
func (r *PostgresRepository) TouchScraped(ctx context.Context, sourceID string, at time.Time) error {
	query, args, err := r.sb.
		Update("sources").
		Set("last_scrape_at", at).
		Where(sq.Eq{"id": sourceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("touch source %s: %w", sourceID, err)
	}
	return nil
}

// Exists answers the dedup check on original_url.
func (r *PostgresRepository) Exists(ctx context.Context, originalURL string) (bool, error) {
	query, args, err := r.sb.
		Select("1").
		From("articles").
		Where(sq.Eq{"original_url": originalURL}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query article existence: %w", err)
	}
	return true, nil
}

// Save inserts a newly accepted article. A unique violation on
// original_url surfaces as ErrDuplicateArticle so concurrent workers
// racing on the same link can skip instead of failing.
func (r *PostgresRepository) Save(ctx context.Context, article domain.Article) error {
	query, args, err := r.sb.
		Insert("articles").
		Columns("id", "title", "slug", "original_url", "source_id", "category", "sub_category",
			"summary", "author", "image_url", "published_at", "status", "rank_score",
			"category_confidence", "original_read_time", "sifted_read_time").
		Values(article.ID, article.Title, article.Slug, article.OriginalURL, article.SourceID,
			string(article.Category), article.SubCategory, article.Summary, article.Author,
			article.ImageURL, article.PublishedAt, string(article.Status), article.RankScore,
			article.CategoryConfidence, article.OriginalReadTime, article.SiftedReadTime).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicateArticle
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// CategoryCounts returns how many articles each category accumulated since
// the given time; seeds the balancer's current distribution.
func (r *PostgresRepository) CategoryCounts(ctx context.Context, since time.Time) (map[domain.Category]int, error) {
	query, args, err := r.sb.
		Select("category", "COUNT(*)").
		From("articles").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build counts query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Category]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[domain.Category(category)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}

	return counts, nil
}

// UpsertScrapeStats records per-category acceptance counts for one cycle
// date, for operator dashboards.
func (r *PostgresRepository) UpsertScrapeStats(ctx context.Context, date time.Time, counts map[domain.Category]int) error {
	total := 0
	for _, count := range counts {
		total += count
	}

	day := date.UTC().Format("2006-01-02")
	for category, count := range counts {
		ratio := 0.0
		if total > 0 {
			ratio = float64(count) / float64(total)
		}

		query, args, err := r.sb.
			Insert("scrape_statistics").
			Columns("scrape_date", "category", "articles_count", "ratio_achieved").
			Values(day, string(category), count, ratio).
			Suffix("ON CONFLICT (scrape_date, category) DO UPDATE SET articles_count = EXCLUDED.articles_count, ratio_achieved = EXCLUDED.ratio_achieved").
			ToSql()
		if err != nil {
			return fmt.Errorf("build stats query: %w", err)
		}

		if _, err := r.pool.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert stats for %s: %w", category, err)
		}
	}
	return nil
}
