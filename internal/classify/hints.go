package classify

import (
	"strings"

	"NewsSift/internal/config"
	"NewsSift/internal/domain"
)

// HintRule maps an outlet-name fragment to a category.
type HintRule struct {
	Substring string
	Category  domain.Category
}

// SourceResolver determines a source-level category before any keyword
// scoring runs. An explicit operator hint always wins; the name heuristic
// is the last resort. Rules run in listed order and the order is a
// tunable: broad fragments placed early would shadow specific ones.
type SourceResolver struct {
	rules []HintRule
}

// NewSourceResolver builds the resolver from configured hint rules.
func NewSourceResolver(hints []config.SourceHintConfig) *SourceResolver {
	rules := make([]HintRule, 0, len(hints))
	for _, h := range hints {
		if h.Substring == "" || h.Category == "" {
			continue
		}
		rules = append(rules, HintRule{
			Substring: strings.ToLower(h.Substring),
			Category:  domain.Category(h.Category),
		})
	}
	return &SourceResolver{rules: rules}
}

// Resolve returns the category for a source, or empty when neither an
// explicit hint nor a name-fragment rule matches.
func (r *SourceResolver) Resolve(sourceName string, hint domain.Category) domain.Category {
	if hint != "" {
		return hint
	}

	lowerName := strings.ToLower(sourceName)
	for _, rule := range r.rules {
		if strings.Contains(lowerName, rule.Substring) {
			return rule.Category
		}
	}

	return ""
}
