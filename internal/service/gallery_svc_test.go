package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohanprasath-dev/AI-Exhibit/internal/model"
)

func TestRankEntries_Empty(t *testing.T) {
	ranked := RankEntries(nil)
	assert.Empty(t, ranked)
}

func TestRankEntries_AssignsSequentialRanks(t *testing.T) {
	entries := []model.Entry{
		{ID: "a", Votes: 50},
		{ID: "b", Votes: 30},
		{ID: "c", Votes: 10},
	}

	ranked := RankEntries(entries)

	assert.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRankEntries_TiesGetDistinctRanks(t *testing.T) {
	// Two entries with equal votes still receive consecutive distinct
	// ranks; the store's secondary ordering decides who comes first.
	entries := []model.Entry{
		{ID: "a", Votes: 50},
		{ID: "b", Votes: 50},
		{ID: "c", Votes: 10},
	}

	ranked := RankEntries(entries)

	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankEntries_RankChangeAlwaysSame(t *testing.T) {
	ranked := RankEntries([]model.Entry{{ID: "a"}, {ID: "b"}})
	for _, r := range ranked {
		assert.Equal(t, "same", r.RankChange)
	}
}

func TestAwardTitle_WithCategoryName(t *testing.T) {
	assert.Equal(t, "Category Head - Digital Art", AwardTitle("digital-art", "Digital Art"))
}

func TestAwardTitle_FallsBackToSlug(t *testing.T) {
	assert.Equal(t, "Category Head - digital-art", AwardTitle("digital-art", ""))
}
