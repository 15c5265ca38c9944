package classify

import (
	"math"
	"sort"
	"strings"

	"NewsSift/internal/config"
	"NewsSift/internal/domain"
)

const maxReportedKeywords = 10

// Fallback classification when nothing matches: every item must be
// classifiable, so unmatched content lands in tech/general at low confidence.
const (
	fallbackCategory    = domain.CategoryTech
	fallbackSubCategory = "general"
	fallbackConfidence  = 0.3
)

// Classifier assigns a (category, subcategory, confidence) to an item by
// weighted keyword scoring. It is a pure function of its inputs: identical
// (title, description) pairs always produce identical results.
type Classifier struct {
	buckets []bucket
}

type bucket struct {
	category    domain.Category
	subCategory string
	keywords    []keyword
}

// keyword pairs the lowercased form used for matching with the
// dictionary's original casing, which is what gets reported back.
type keyword struct {
	match string
	label string
}

// New builds a classifier from the configured keyword dictionary.
// Matching is lowercased once here; bucket order follows config order,
// which also breaks exact score ties deterministically.
func New(categories []config.CategoryConfig) *Classifier {
	c := &Classifier{}
	for _, cat := range categories {
		for _, sub := range cat.SubCategories {
			keywords := make([]keyword, 0, len(sub.Keywords))
			for _, kw := range sub.Keywords {
				kw = strings.TrimSpace(kw)
				if kw != "" {
					keywords = append(keywords, keyword{
						match: strings.ToLower(kw),
						label: kw,
					})
				}
			}
			c.buckets = append(c.buckets, bucket{
				category:    domain.Category(cat.Name),
				subCategory: sub.Name,
				keywords:    keywords,
			})
		}
	}
	return c
}

type candidate struct {
	bucket  bucket
	score   int
	matches []string
}

// Classify scores every (category, subcategory) bucket against the item.
// A distinct keyword found in the title counts 2, in the description 1.
// Confidence rewards a clear gap between the top bucket and the runner-up
// and gets flat bonuses for high absolute scores.
func (c *Classifier) Classify(title, description string) domain.Classification {
	normTitle := strings.ToLower(title)
	normDescription := strings.ToLower(description)

	var candidates []candidate
	for _, b := range c.buckets {
		score := 0
		var matches []string
		for _, kw := range b.keywords {
			inTitle := strings.Contains(normTitle, kw.match)
			inDescription := strings.Contains(normDescription, kw.match)
			if inTitle {
				score += 2
			}
			if inDescription {
				score++
			}
			if inTitle || inDescription {
				matches = append(matches, kw.label)
			}
		}
		if score > 0 {
			candidates = append(candidates, candidate{bucket: b, score: score, matches: matches})
		}
	}

	if len(candidates) == 0 {
		return domain.Classification{
			Category:        fallbackCategory,
			SubCategory:     fallbackSubCategory,
			Confidence:      fallbackConfidence,
			MatchedKeywords: []string{},
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	top := candidates[0]
	second := 0
	if len(candidates) > 1 {
		second = candidates[1].score
	}

	scoreDiff := float64(top.score - second)
	confidence := math.Min(0.99, 0.5+(scoreDiff/float64(top.score+second+1))*0.5)
	if top.score >= 5 {
		confidence = math.Min(0.99, confidence+0.1)
	}
	if top.score >= 10 {
		confidence = math.Min(0.99, confidence+0.1)
	}

	matched := top.matches
	if len(matched) > maxReportedKeywords {
		matched = matched[:maxReportedKeywords]
	}

	return domain.Classification{
		Category:        top.bucket.category,
		SubCategory:     top.bucket.subCategory,
		Confidence:      math.Round(confidence*100) / 100,
		MatchedKeywords: matched,
	}
}
