package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsSift/internal/domain"
)

// Parser turns raw RSS 2.0 or Atom XML into a normalized feed. Format
// detection happens inside gofeed, so callers never pre-detect. Individual
// malformed entries are dropped silently; only a document that fails to
// parse at all is an error.
type Parser struct {
	fp         *gofeed.Parser
	strategies []ImageStrategy
	logger     *slog.Logger
}

// NewParser builds a parser with the default image strategy order.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{
		fp:         gofeed.NewParser(),
		strategies: DefaultImageStrategies(),
		logger:     logger,
	}
}

// Parse normalizes one raw feed document.
func (p *Parser) Parse(raw []byte) (*domain.ParsedFeed, error) {
	feed, err := p.fp.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	feedType := domain.FeedTypeRSS
	if feed.FeedType == "atom" {
		feedType = domain.FeedTypeAtom
	}

	parsed := &domain.ParsedFeed{
		Title:    SanitizeText(feed.Title),
		FeedType: feedType,
	}
	if parsed.Title == "" {
		parsed.Title = "Unknown Feed"
	}

	dropped := 0
	for _, item := range feed.Items {
		rawDescription := item.Description
		if rawDescription == "" {
			rawDescription = item.Content
		}

		title := SanitizeText(item.Title)
		link := SanitizeURL(entryLink(item))
		if title == "" || link == "" {
			// Malformed entries are expected across heterogeneous feeds.
			dropped++
			continue
		}

		parsed.Items = append(parsed.Items, domain.FeedItem{
			Title:       title,
			Link:        link,
			Description: SanitizeText(rawDescription),
			PubDate:     entryDate(item),
			Author:      entryAuthor(item),
			ImageURL:    SanitizeURL(ResolveImage(item, rawDescription, p.strategies)),
			GUID:        item.GUID,
		})
	}

	if p.logger != nil && dropped > 0 {
		p.logger.Debug("dropped malformed entries", "feed", parsed.Title, "dropped", dropped)
	}

	return parsed, nil
}

// entryLink prefers the resolved item link (alternate or rel-less for
// Atom) and falls back to the first declared link, so entries whose only
// link carries another rel are kept rather than dropped.
func entryLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if len(item.Links) > 0 {
		return item.Links[0]
	}
	return ""
}

// entryDate prefers the published time, falls back to updated, and leaves
// unparsable dates nil rather than failing the entry.
func entryDate(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed
	}
	return nil
}

func entryAuthor(item *gofeed.Item) string {
	for _, person := range item.Authors {
		if person != nil && person.Name != "" {
			return SanitizeText(person.Name)
		}
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return SanitizeText(item.DublinCoreExt.Creator[0])
	}
	return ""
}
