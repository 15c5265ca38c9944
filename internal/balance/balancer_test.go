package balance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSift/internal/config"
	"NewsSift/internal/domain"
)

func testCategories() []config.CategoryConfig {
	return []config.CategoryConfig{
		{Name: "tech", TargetRatio: 0.58},
		{Name: "video_games", TargetRatio: 0.10},
		{Name: "finance", TargetRatio: 0.14},
		{Name: "politics", TargetRatio: 0.08},
		{Name: "climate", TargetRatio: 0.10},
	}
}

func newTestBalancer() *Balancer {
	return New(testCategories(), config.BalancerConfig{})
}

func TestDistribution(t *testing.T) {
	b := newTestBalancer()

	t.Run("empty store yields zero ratios", func(t *testing.T) {
		dist := b.Distribution(nil)
		require.Len(t, dist, 5)
		for _, d := range dist {
			assert.Zero(t, d.Count)
			assert.Zero(t, d.Ratio)
		}
	})

	t.Run("ratios sum to one", func(t *testing.T) {
		dist := b.Distribution(map[domain.Category]int{
			domain.CategoryTech:    60,
			domain.CategoryFinance: 25,
			domain.CategoryClimate: 15,
		})
		sum := 0.0
		for _, d := range dist {
			sum += d.Ratio
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})
}

func TestQuotasSkewedDistribution(t *testing.T) {
	b := newTestBalancer()

	// Tech holds 80% of the store against a 58% target; finance holds
	// the remaining 20% against 14%.
	dist := b.Distribution(map[domain.Category]int{
		domain.CategoryTech:    80,
		domain.CategoryFinance: 20,
	})
	result := b.Quotas(dist, 50)

	quotas := make(map[domain.Category]CategoryQuota)
	for _, q := range result.Quotas {
		quotas[q.Category] = q
	}

	// Overrepresented tech is damped below its neutral share but never
	// below one.
	neutralTech := 29 // round(50 * 0.58)
	assert.Less(t, quotas[domain.CategoryTech].Quota, neutralTech)
	assert.GreaterOrEqual(t, quotas[domain.CategoryTech].Quota, 1)
	assert.False(t, quotas[domain.CategoryTech].IsUnderrepresented)

	// Climate has zero presence and gets amplified above its neutral
	// share of round(50 * 0.10) = 5.
	assert.Greater(t, quotas[domain.CategoryClimate].Quota, 5)
	assert.True(t, quotas[domain.CategoryClimate].IsUnderrepresented)

	assert.True(t, result.DeviationAlert)
	assert.Contains(t, result.Recommendations,
		"TECH: DECREASE scraping. Current: 80.0%, Target: 58.0%")
	assert.Contains(t, result.Recommendations,
		"CLIMATE: INCREASE scraping. Current: 0.0%, Target: 10.0%")
}

func TestQuotasDeepTechSkew(t *testing.T) {
	b := newTestBalancer()

	dist := b.Distribution(map[domain.Category]int{
		domain.CategoryTech:    90,
		domain.CategoryFinance: 10,
	})
	result := b.Quotas(dist, 50)

	for _, q := range result.Quotas {
		adjustment := float64(q.Quota) / math.Round(50*q.TargetRatio)
		switch q.Category {
		case domain.CategoryTech:
			assert.Less(t, adjustment, 1.0)
		case domain.CategoryClimate:
			assert.Greater(t, adjustment, 1.0)
		}
	}
}

func TestQuotasBalancedStoreRaisesNoAlert(t *testing.T) {
	b := newTestBalancer()

	dist := b.Distribution(map[domain.Category]int{
		domain.CategoryTech:       58,
		domain.CategoryVideoGames: 10,
		domain.CategoryFinance:    14,
		domain.CategoryPolitics:   8,
		domain.CategoryClimate:    10,
	})
	result := b.Quotas(dist, 50)

	assert.False(t, result.DeviationAlert)
	assert.Empty(t, result.Recommendations)

	// With zero deviation every adjustment factor is 1, so the quotas
	// conserve the base budget.
	quotaSum := 0
	for _, q := range result.Quotas {
		assert.InDelta(t, 0, q.Priority, 1e-9)
		quotaSum += q.Quota
	}
	assert.Equal(t, 50, quotaSum)
}

func TestQuotasSortedByPriority(t *testing.T) {
	b := newTestBalancer()

	dist := b.Distribution(map[domain.Category]int{
		domain.CategoryTech: 100,
	})
	result := b.Quotas(dist, 50)

	for i := 1; i < len(result.Quotas); i++ {
		assert.GreaterOrEqual(t,
			result.Quotas[i-1].Priority, result.Quotas[i].Priority)
	}
	// Everything except tech is starved, so tech sorts last.
	assert.Equal(t, domain.CategoryTech, result.Quotas[len(result.Quotas)-1].Category)
}

func TestQuotasFloorOfOne(t *testing.T) {
	b := newTestBalancer()

	// Politics at 100% of the store drives its adjustment factor
	// negative; the quota still bottoms out at one.
	dist := b.Distribution(map[domain.Category]int{
		domain.CategoryPolitics: 500,
	})
	result := b.Quotas(dist, 50)

	for _, q := range result.Quotas {
		assert.GreaterOrEqual(t, q.Quota, 1, "category %s", q.Category)
	}
}

func TestQuotasEmptyStore(t *testing.T) {
	b := newTestBalancer()

	result := b.Quotas(b.Distribution(nil), 50)

	assert.Zero(t, result.TotalArticles)
	assert.True(t, result.DeviationAlert)
	for _, q := range result.Quotas {
		assert.True(t, q.IsUnderrepresented)
	}
}

func TestAlignmentScore(t *testing.T) {
	b := newTestBalancer()

	skewed := b.Distribution(map[domain.Category]int{
		domain.CategoryTech:    90,
		domain.CategoryFinance: 10,
	})

	t.Run("underrepresented scores above neutral", func(t *testing.T) {
		score := b.AlignmentScore(domain.CategoryClimate, skewed)
		assert.Greater(t, score, 50.0)
		assert.LessOrEqual(t, score, 100.0)
	})

	t.Run("overrepresented scores below neutral", func(t *testing.T) {
		score := b.AlignmentScore(domain.CategoryTech, skewed)
		assert.Less(t, score, 50.0)
		assert.GreaterOrEqual(t, score, 0.0)
	})

	t.Run("unknown category is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, b.AlignmentScore(domain.Category("sports"), skewed))
	})

	t.Run("deep skew clamps at zero", func(t *testing.T) {
		onlyTech := b.Distribution(map[domain.Category]int{domain.CategoryTech: 100})
		assert.Equal(t, 0.0, b.AlignmentScore(domain.CategoryTech, onlyTech))
	})
}
