package feed

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSift/internal/domain"
)

func newTestParser() *Parser {
	return NewParser(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParseRSS(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Tech News</title>
    <link>https://example.com</link>
    <item>
      <title>First &amp; Foremost</title>
      <link>https://example.com/first</link>
      <description>&lt;p&gt;Lead paragraph with &lt;b&gt;markup&lt;/b&gt;.&lt;/p&gt;</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
    <item>
      <title>Second Story</title>
      <link>https://example.com/second</link>
      <description>Plain text body.</description>
    </item>
  </channel>
</rss>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Example Tech News", parsed.Title)
	assert.Equal(t, domain.FeedTypeRSS, parsed.FeedType)
	require.Len(t, parsed.Items, 2)

	first := parsed.Items[0]
	assert.Equal(t, "First & Foremost", first.Title)
	assert.Equal(t, "https://example.com/first", first.Link)
	assert.Equal(t, "Lead paragraph with markup.", first.Description)
	require.NotNil(t, first.PubDate)
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), first.PubDate.UTC())

	assert.Nil(t, parsed.Items[1].PubDate)
}

func TestParseAtomPrefersAlternateLink(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Atom Feed</title>
  <id>urn:uuid:feed</id>
  <updated>2024-05-01T12:00:00Z</updated>
  <entry>
    <title>Atom Entry</title>
    <id>urn:uuid:entry-1</id>
    <updated>2024-05-01T12:00:00Z</updated>
    <link rel="self" href="https://example.com/atom/entry-1.xml"/>
    <link rel="alternate" href="https://example.com/articles/entry-1"/>
    <summary>Entry body.</summary>
  </entry>
</feed>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.FeedTypeAtom, parsed.FeedType)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "https://example.com/articles/entry-1", parsed.Items[0].Link)
}

func TestParseAtomFallsBackToFirstLink(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Self Links Only</title>
  <id>urn:uuid:feed</id>
  <updated>2024-05-01T12:00:00Z</updated>
  <entry>
    <title>Entry With Self Link</title>
    <id>urn:uuid:entry-2</id>
    <updated>2024-05-01T12:00:00Z</updated>
    <link rel="self" href="https://example.com/atom/entry-2.xml"/>
    <summary>Entry body.</summary>
  </entry>
</feed>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "https://example.com/atom/entry-2.xml", parsed.Items[0].Link)
}

func TestParseDropsMalformedEntries(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Mixed Feed</title>
    <item>
      <title>Good Entry</title>
      <link>https://example.com/good</link>
    </item>
    <item>
      <description>No title, no link.</description>
    </item>
    <item>
      <title>No Link Entry</title>
    </item>
  </channel>
</rss>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Good Entry", parsed.Items[0].Title)
}

func TestParseEnclosureImage(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Image Feed</title>
    <item>
      <title>With Enclosure</title>
      <link>https://example.com/story</link>
      <enclosure url="https://cdn.example.com/hero.jpg" type="image/jpeg" length="1024"/>
    </item>
  </channel>
</rss>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", parsed.Items[0].ImageURL)
}

func TestParseMediaThumbnail(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Media Feed</title>
    <item>
      <title>With Thumbnail</title>
      <link>https://example.com/story</link>
      <media:thumbnail url="https://cdn.example.com/thumb.png" width="150" height="150"/>
      <enclosure url="https://cdn.example.com/fallback.jpg" type="image/jpeg" length="1"/>
    </item>
  </channel>
</rss>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	require.Len(t, parsed.Items, 1)
	// The structured thumbnail outranks the enclosure.
	assert.Equal(t, "https://cdn.example.com/thumb.png", parsed.Items[0].ImageURL)
}

func TestParseInlineImageFallback(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Inline Feed</title>
    <item>
      <title>With Inline Image</title>
      <link>https://example.com/story</link>
      <description>&lt;p&gt;Text&lt;/p&gt;&lt;img src="https://cdn.example.com/inline.gif"&gt;</description>
    </item>
  </channel>
</rss>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "https://cdn.example.com/inline.gif", parsed.Items[0].ImageURL)
	// The inline image never leaks into the sanitized description.
	assert.Equal(t, "Text", parsed.Items[0].Description)
}

func TestParseInvalidXML(t *testing.T) {
	_, err := newTestParser().Parse([]byte("this is not a feed"))
	assert.Error(t, err)
}

func TestParseUntitledFeed(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <item>
      <title>Orphan Entry</title>
      <link>https://example.com/orphan</link>
    </item>
  </channel>
</rss>`)

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Feed", parsed.Title)
}
