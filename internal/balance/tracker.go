package balance

import (
	"sync"

	"NewsSift/internal/domain"
)

// Tracker counts acceptances against the cycle's quotas. It is created for
// a single ingestion cycle and threaded explicitly through the
// orchestrator; it never touches the persisted historical counts that
// seeded the quotas. Source workers share one Tracker, so access is
// mutex-guarded.
type Tracker struct {
	mu      sync.Mutex
	quotas  map[domain.Category]int
	scraped map[domain.Category]int
}

// NewTracker starts cycle bookkeeping for the given quotas.
func NewTracker(quotas []CategoryQuota) *Tracker {
	t := &Tracker{
		quotas:  make(map[domain.Category]int, len(quotas)),
		scraped: make(map[domain.Category]int, len(quotas)),
	}
	for _, q := range quotas {
		t.quotas[q.Category] = q.Quota
		t.scraped[q.Category] = 0
	}
	return t
}

// HasRemaining reports whether the category can still accept an article
// this cycle. Unknown categories have no quota.
func (t *Tracker) HasRemaining(category domain.Category) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	quota, ok := t.quotas[category]
	if !ok {
		return false
	}
	return t.scraped[category] < quota
}

// Remaining returns how many more articles the category may accept.
func (t *Tracker) Remaining(category domain.Category) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	quota, ok := t.quotas[category]
	if !ok {
		return 0
	}
	remaining := quota - t.scraped[category]
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Record counts one accepted article against the category's quota.
func (t *Tracker) Record(category domain.Category) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scraped[category]++
}

// Counts returns a copy of the per-category acceptance counts.
func (t *Tracker) Counts() map[domain.Category]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[domain.Category]int, len(t.scraped))
	for category, count := range t.scraped {
		counts[category] = count
	}
	return counts
}
