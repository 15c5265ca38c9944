package domain

import "time"

// Category is a top-level content bucket used for classification and balancing.
type Category string

const (
	CategoryTech       Category = "tech"
	CategoryVideoGames Category = "video_games"
	CategoryFinance    Category = "finance"
	CategoryPolitics   Category = "politics"
	CategoryClimate    Category = "climate"
)

// Categories lists every content category in a stable order.
func Categories() []Category {
	return []Category{CategoryTech, CategoryVideoGames, CategoryFinance, CategoryPolitics, CategoryClimate}
}

// SourcePriority orders sources within a category when scraping.
type SourcePriority string

const (
	PriorityLow      SourcePriority = "low"
	PriorityMedium   SourcePriority = "medium"
	PriorityHigh     SourcePriority = "high"
	PriorityCritical SourcePriority = "critical"
)

// Source is a syndication feed registered by an admin. The pipeline treats
// it as read-only except for LastScrapeAt updates.
type Source struct {
	ID                    string
	Name                  string
	FeedURL               string
	WebsiteURL            string
	IsActive              bool
	Priority              SourcePriority
	ScrapeIntervalMinutes int
	LastScrapeAt          *time.Time
	CategoryHint          Category // empty when the operator set no hint
	SubCategoryHint       string
}

// ArticleStatus enumerates the persistence lifecycle of an article.
type ArticleStatus string

const (
	StatusPending    ArticleStatus = "pending"
	StatusProcessing ArticleStatus = "processing"
	StatusPublished  ArticleStatus = "published"
	StatusFailed     ArticleStatus = "failed"
	StatusArchived   ArticleStatus = "archived"
)

// Article is the persisted record produced on acceptance. OriginalURL is
// unique and serves as the dedup key; the external summarizer flips Status
// to published once a summary is attached.
type Article struct {
	ID                 string
	Title              string
	Slug               string
	OriginalURL        string
	SourceID           string
	Category           Category
	SubCategory        string
	Summary            string
	Author             string
	ImageURL           string
	PublishedAt        time.Time
	Status             ArticleStatus
	RankScore          float64
	CategoryConfidence float64
	OriginalReadTime   int
	SiftedReadTime     int
}

// Classification is the pure output of the keyword classifier for one item.
type Classification struct {
	Category        Category
	SubCategory     string
	Confidence      float64
	MatchedKeywords []string
}
