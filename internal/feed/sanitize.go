package feed

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy  = bluemonday.StrictPolicy()
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F-\x9F]`)
	inlineImg    = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
)

// SanitizeText strips HTML tags, unescapes entities, and removes control
// characters. Feed text fields pass through here before any length or
// emptiness gate is applied.
func SanitizeText(text string) string {
	text = stripPolicy.Sanitize(text)
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")
	text = controlChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// SanitizeURL normalizes a URL through parsing; unparsable input is
// returned trimmed rather than rejected, since the caller validates
// absoluteness separately.
func SanitizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.String()
}

// IsValidArticleURL reports whether a link is an absolute http(s) URL.
func IsValidArticleURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// FirstImageInHTML extracts the first <img src> from raw HTML. Used as the
// last-resort image strategy against the unsanitized description.
func FirstImageInHTML(rawHTML string) string {
	match := inlineImg.FindStringSubmatch(rawHTML)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
