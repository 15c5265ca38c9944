package feed

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ImageStrategy tries one way of resolving an entry image. Strategies run
// in list order and the first non-empty result wins; keeping each rule a
// separate function keeps them independently testable.
type ImageStrategy func(item *gofeed.Item, descriptionHTML string) string

var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|avif)(\?|$)`)

// DefaultImageStrategies returns the extraction order: structured media
// extensions first, then image enclosures, then item-level images, then a
// scrape of the raw description HTML. Order is significant.
func DefaultImageStrategies() []ImageStrategy {
	return []ImageStrategy{
		mediaExtensionImage,
		enclosureImage,
		itemLevelImage,
		inlineHTMLImage,
	}
}

// ResolveImage runs the strategies against one entry.
func ResolveImage(item *gofeed.Item, descriptionHTML string, strategies []ImageStrategy) string {
	for _, strategy := range strategies {
		if u := strategy(item, descriptionHTML); u != "" && isHTTPImageURL(u) {
			return u
		}
	}
	return ""
}

// mediaExtensionImage reads media:thumbnail and media:content extensions.
func mediaExtensionImage(item *gofeed.Item, _ string) string {
	mediaExt, ok := item.Extensions["media"]
	if !ok {
		return ""
	}

	for _, thumb := range mediaExt["thumbnail"] {
		if u := thumb.Attrs["url"]; u != "" {
			return u
		}
	}

	for _, content := range mediaExt["content"] {
		u := content.Attrs["url"]
		if u == "" {
			continue
		}
		medium := content.Attrs["medium"]
		if medium == "image" || medium == "" || strings.HasPrefix(content.Attrs["type"], "image/") {
			return u
		}
	}

	return ""
}

// enclosureImage accepts enclosures declared image/* or, when the type is
// missing, URLs that look like image files.
func enclosureImage(item *gofeed.Item, _ string) string {
	for _, enc := range item.Enclosures {
		if enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
		if enc.Type == "" && imageExtPattern.MatchString(enc.URL) {
			return enc.URL
		}
	}
	return ""
}

// itemLevelImage covers feeds publishing an <image> or itunes:image per item.
func itemLevelImage(item *gofeed.Item, _ string) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		return item.ITunesExt.Image
	}
	return ""
}

// inlineHTMLImage scrapes the first <img src> out of the raw description.
func inlineHTMLImage(_ *gofeed.Item, descriptionHTML string) string {
	return FirstImageInHTML(descriptionHTML)
}

func isHTTPImageURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
