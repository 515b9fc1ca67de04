package algo

import (
	"testing"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(title string, count int, size float64) schema.RankedRequest {
	return ComputeRequestPriority(schema.GameRequest{
		RequestID:       title,
		Title:           title,
		RequestCount:    count,
		EstimatedSizeGB: size,
		Status:          schema.OpenStatus,
	}, schema.DefaultPriorityConfig())
}

// TestRankRequests tests ordering, tie-breaks and limits.
func TestRankRequests(t *testing.T) {
	requests := []schema.RankedRequest{
		ranked("Starfield", 2, 125),
		ranked("Celeste", 20, 1),
		ranked("Hades", 10, 15),
		ranked("Braid", 10, 15),
	}

	got := RankRequests(requests, 0)
	require.Len(t, got, 4)
	assert.Equal(t, "Celeste", got[0].Title)
	assert.Equal(t, "Braid", got[1].Title, "equal scores fall back to title")
	assert.Equal(t, "Hades", got[2].Title)
	assert.Equal(t, "Starfield", got[3].Title)

	top := RankRequests(requests, 2)
	assert.Len(t, top, 2)
}

// TestRankRequestsDemandTieBreak prefers higher demand at equal score.
func TestRankRequestsDemandTieBreak(t *testing.T) {
	cfg := MergePriorityConfig(schema.PriorityOverrides{WeightRequestCount: ptr(0), WeightSize: ptr(1)})
	a := ComputeRequestPriority(schema.GameRequest{Title: "A", RequestCount: 1, EstimatedSizeGB: 10}, cfg)
	b := ComputeRequestPriority(schema.GameRequest{Title: "B", RequestCount: 9, EstimatedSizeGB: 10}, cfg)

	got := RankRequests([]schema.RankedRequest{a, b}, 10)
	assert.Equal(t, "B", got[0].Title)
}

// TestCountLabels tallies every label, including empty ones.
func TestCountLabels(t *testing.T) {
	counts := CountLabels([]schema.RankedRequest{
		ranked("Celeste", 20, 1),
		ranked("Starfield", 0, 125),
	})
	assert.Equal(t, 1, counts[schema.HotLabel])
	assert.Equal(t, 0, counts[schema.NormalLabel])
	assert.Equal(t, 1, counts[schema.BatchLaterLabel])
}
