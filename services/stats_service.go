package services

import (
	"fmt"
	"time"

	"github.com/naacportal/api/database"
	"github.com/naacportal/api/model"
)

// Stats cache settings shared by the stats handler and the snapshot cron job.
// Store operations themselves are never cached; only the computed dashboard
// numbers are, with a TTL short enough that a stale dashboard corrects itself
// between mutations.
const (
	StatsCacheKey = "stats:dashboard"
	StatsCacheTTL = 60 * time.Second
)

// StatsService computes dashboard aggregates over the current entry set.
type StatsService struct {
	store database.Storage
}

// NewStatsService creates a new stats service
func NewStatsService(store database.Storage) *StatsService {
	return &StatsService{store: store}
}

// DashboardStats represents the portal's dashboard numbers.
type DashboardStats struct {
	TotalEntries      int            `json:"totalEntries"`
	CriteriaProgress  map[string]int `json:"criteriaProgress"`
	CompletedCriteria int            `json:"completedCriteria"`
	OverallProgress   int            `json:"overallProgress"`
	LastUpdated       string         `json:"lastUpdated"`
}

// GetDashboardStats loads the entry set and aggregates it.
func (s *StatsService) GetDashboardStats() (*DashboardStats, error) {
	entries, err := s.store.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return Aggregate(entries), nil
}

// Aggregate computes per-criteria completion progress and summary statistics.
// Each entry filed under a criterion contributes 25 points toward it, capped
// at 100; four entries saturate a criterion. The cap is a long-standing portal
// heuristic, kept as-is for compatibility with historical dashboards.
func Aggregate(entries []model.Entry) *DashboardStats {
	progress := make(map[string]int, len(model.CriteriaCodes))
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Criteria]++
	}

	sum := 0
	completed := 0
	for _, code := range model.CriteriaCodes {
		p := counts[code] * 25
		if p > 100 {
			p = 100
		}
		progress[code] = p
		sum += p
		if p > 0 {
			completed++
		}
	}

	// round(sum/7) over the seven criteria
	overall := (sum + len(model.CriteriaCodes)/2) / len(model.CriteriaCodes)

	return &DashboardStats{
		TotalEntries:      len(entries),
		CriteriaProgress:  progress,
		CompletedCriteria: completed,
		OverallProgress:   overall,
		LastUpdated:       lastUpdated(entries),
	}
}

// lastUpdated finds the newest DateAdded across all entries and re-formats it
// for display. DateAdded is always written with model.DateAddedLayout, so the
// re-parse is unambiguous; values that still fail to parse are skipped.
// Returns "Never" when no entry carries a usable date.
func lastUpdated(entries []model.Entry) string {
	var newest time.Time
	found := false
	for _, e := range entries {
		t, err := time.Parse(model.DateAddedLayout, e.DateAdded)
		if err != nil {
			continue
		}
		if !found || t.After(newest) {
			newest = t
			found = true
		}
	}
	if !found {
		return "Never"
	}
	return newest.Format(model.DateAddedLayout)
}
