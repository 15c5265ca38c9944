package domain

import "time"

// FeedType distinguishes the syndication format of a parsed feed.
type FeedType string

const (
	FeedTypeRSS  FeedType = "rss"
	FeedTypeAtom FeedType = "atom"
)

// FeedItem is one normalized feed entry. It lives for a single ingestion
// cycle and is never persisted as-is. Title and Link are guaranteed
// non-empty after sanitization; entries that fail that gate are dropped
// by the parser.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	PubDate     *time.Time
	Author      string
	ImageURL    string
	GUID        string
}

// ParsedFeed is the normalized output of parsing one raw feed document.
type ParsedFeed struct {
	Title    string
	FeedType FeedType
	Items    []FeedItem
}
