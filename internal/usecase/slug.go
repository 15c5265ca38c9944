package usecase

import (
	"strconv"
	"strings"
	"time"
)

const maxSlugLength = 100

// slugify derives a URL path segment from an article title. A base36
// timestamp suffix keeps slugs unique across titles that normalize to
// the same text.
func slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	prevDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	suffix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
