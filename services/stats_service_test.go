package services

import (
	"testing"

	"github.com/naacportal/api/model"
	"github.com/stretchr/testify/assert"
)

func entriesWithCriteria(counts map[string]int) []model.Entry {
	var entries []model.Entry
	for code, n := range counts {
		for i := 0; i < n; i++ {
			entries = append(entries, model.Entry{
				InstitutionName: "Test College",
				Criteria:        code,
				AcademicYear:    "2023-24",
				Description:     "entry",
			})
		}
	}
	return entries
}

func TestAggregateEmptySet(t *testing.T) {
	stats := Aggregate(nil)

	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, 0, stats.CompletedCriteria)
	assert.Equal(t, 0, stats.OverallProgress)
	assert.Equal(t, "Never", stats.LastUpdated)
	for _, code := range model.CriteriaCodes {
		assert.Equal(t, 0, stats.CriteriaProgress[code])
	}
}

func TestAggregateProgressSaturation(t *testing.T) {
	stats := Aggregate(entriesWithCriteria(map[string]int{
		"2": 1,
		"3": 4,
		"4": 6,
	}))

	expected := map[string]int{
		"1": 0, "2": 25, "3": 100, "4": 100, "5": 0, "6": 0, "7": 0,
	}
	assert.Equal(t, expected, stats.CriteriaProgress)
	assert.Equal(t, 11, stats.TotalEntries)
	// Codes 2, 3 and 4 all carry entries, so three criteria count as started.
	assert.Equal(t, 3, stats.CompletedCriteria)
	// round((0+25+100+100+0+0+0)/7)
	assert.Equal(t, 32, stats.OverallProgress)
}

func TestAggregateAllCriteriaSaturated(t *testing.T) {
	counts := map[string]int{}
	for _, code := range model.CriteriaCodes {
		counts[code] = 4
	}
	stats := Aggregate(entriesWithCriteria(counts))

	assert.Equal(t, 7, stats.CompletedCriteria)
	assert.Equal(t, 100, stats.OverallProgress)
}

func TestAggregateLastUpdated(t *testing.T) {
	entries := []model.Entry{
		{Criteria: "1", DateAdded: "05/01/2024"},
		{Criteria: "2", DateAdded: "21/03/2024"},
		{Criteria: "3", DateAdded: "14/02/2024"},
	}

	stats := Aggregate(entries)
	assert.Equal(t, "21/03/2024", stats.LastUpdated)
}

func TestAggregateLastUpdatedSkipsUnparseable(t *testing.T) {
	entries := []model.Entry{
		{Criteria: "1", DateAdded: "not a date"},
		{Criteria: "2", DateAdded: "02/01/2023"},
	}

	stats := Aggregate(entries)
	assert.Equal(t, "02/01/2023", stats.LastUpdated)
}
