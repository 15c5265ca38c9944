package balance

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"NewsSift/internal/config"
	"NewsSift/internal/domain"
)

// CategoryDistribution is the share of stored content one category holds.
type CategoryDistribution struct {
	Category domain.Category
	Count    int
	Ratio    float64
}

// CategoryQuota is the per-cycle acceptance budget for one category.
// Derived fresh every cycle from the stored distribution, never persisted.
type CategoryQuota struct {
	Category           domain.Category
	TargetRatio        float64
	CurrentRatio       float64
	CurrentCount       int
	Quota              int
	Priority           float64
	IsUnderrepresented bool
}

// Result is the balancer output for one ingestion cycle.
type Result struct {
	Quotas          []CategoryQuota
	TotalArticles   int
	DeviationAlert  bool
	Recommendations []string
}

// Balancer computes per-category quotas that steer the stored content mix
// toward the configured target ratios. Deviation is amplified so that
// drift corrects within roughly one to two cycles.
type Balancer struct {
	targets            []target
	amplification      float64
	deviationThreshold float64
}

type target struct {
	category domain.Category
	ratio    float64
}

// New builds a balancer from the category ratio config.
func New(categories []config.CategoryConfig, cfg config.BalancerConfig) *Balancer {
	b := &Balancer{
		amplification:      cfg.Amplification,
		deviationThreshold: cfg.DeviationThreshold,
	}
	if b.amplification <= 0 {
		b.amplification = 3
	}
	if b.deviationThreshold <= 0 {
		b.deviationThreshold = 0.05
	}
	for _, cat := range categories {
		b.targets = append(b.targets, target{
			category: domain.Category(cat.Name),
			ratio:    cat.TargetRatio,
		})
	}
	return b
}

// Distribution computes per-category ratios from raw counts. Categories
// absent from counts contribute zero; ratios are zero when the store is empty.
func (b *Balancer) Distribution(counts map[domain.Category]int) []CategoryDistribution {
	total := 0
	for _, count := range counts {
		total += count
	}

	dist := make([]CategoryDistribution, 0, len(b.targets))
	for _, t := range b.targets {
		count := counts[t.category]
		ratio := 0.0
		if total > 0 {
			ratio = float64(count) / float64(total)
		}
		dist = append(dist, CategoryDistribution{Category: t.category, Count: count, Ratio: ratio})
	}
	return dist
}

// Quotas derives the per-category acceptance budgets for one cycle.
// Positive deviation (target above current) marks a category as
// underrepresented and amplifies its quota; overrepresented categories are
// damped but never starved below quota 1. The returned quotas are sorted
// by priority so the orchestrator scrapes the neediest categories first.
func (b *Balancer) Quotas(dist []CategoryDistribution, baseQuota int) Result {
	byCategory := make(map[domain.Category]CategoryDistribution, len(dist))
	totalArticles := 0
	for _, d := range dist {
		byCategory[d.Category] = d
		totalArticles += d.Count
	}

	result := Result{TotalArticles: totalArticles}
	for _, t := range b.targets {
		current := byCategory[t.category]
		deviation := t.ratio - current.Ratio
		underrepresented := deviation > 0

		if math.Abs(deviation) > b.deviationThreshold {
			result.DeviationAlert = true
			direction := "DECREASE"
			if underrepresented {
				direction = "INCREASE"
			}
			result.Recommendations = append(result.Recommendations, fmt.Sprintf(
				"%s: %s scraping. Current: %.1f%%, Target: %.1f%%",
				strings.ToUpper(string(t.category)), direction,
				current.Ratio*100, t.ratio*100,
			))
		}

		adjustment := 1 + deviation*b.amplification
		categoryBase := math.Round(float64(baseQuota) * t.ratio)
		quota := int(math.Max(1, math.Round(categoryBase*adjustment)))

		result.Quotas = append(result.Quotas, CategoryQuota{
			Category:           t.category,
			TargetRatio:        t.ratio,
			CurrentRatio:       current.Ratio,
			CurrentCount:       current.Count,
			Quota:              quota,
			Priority:           math.Max(0, deviation*100),
			IsUnderrepresented: underrepresented,
		})
	}

	sort.SliceStable(result.Quotas, func(i, j int) bool {
		return result.Quotas[i].Priority > result.Quotas[j].Priority
	})

	return result
}

// AlignmentScore returns a 0-100 ranking bonus for articles in the given
// category: 50 is neutral, underrepresentation lifts the score toward 100
// and overrepresentation pushes it toward 0. Downstream ranking consumes
// this without knowing anything about quotas.
func (b *Balancer) AlignmentScore(category domain.Category, dist []CategoryDistribution) float64 {
	var targetRatio float64
	found := false
	for _, t := range b.targets {
		if t.category == category {
			targetRatio = t.ratio
			found = true
			break
		}
	}
	if !found {
		return 50
	}

	for _, d := range dist {
		if d.Category != category {
			continue
		}
		deviation := targetRatio - d.Ratio
		if deviation > 0 {
			return math.Min(100, 50+deviation*200)
		}
		return math.Max(0, 50+deviation*200)
	}
	return 50
}
