package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoresWith(growth, financial, operational, overall int) Scores {
	return Scores{
		Sections: map[SectionID]SectionScore{
			SectionGrowthPotential:      {Score: Score{Percentage: growth}},
			SectionFinancialHealth:      {Score: Score{Percentage: financial}},
			SectionOperationalReadiness: {Score: Score{Percentage: operational}},
		},
		Overall: Score{Percentage: overall},
	}
}

func TestRecommend_FixedOrder(t *testing.T) {
	recs, err := Recommend(scoresWith(10, 50, 90, 60))
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.Equal(t, RecommendationGrowth, recs[0].Type)
	assert.Equal(t, RecommendationFinancial, recs[1].Type)
	assert.Equal(t, RecommendationOperational, recs[2].Type)
	assert.Equal(t, RecommendationExit, recs[3].Type)
	assert.Equal(t, PriorityAdvisory, recs[3].Priority)
}

func TestRecommend_DimensionBoundaries(t *testing.T) {
	tests := []struct {
		pct      int
		priority Priority
	}{
		{0, PriorityHigh},
		{39, PriorityHigh},
		{40, PriorityMedium},
		{69, PriorityMedium},
		{70, PriorityLow},
		{100, PriorityLow},
	}

	for _, tt := range tests {
		recs, err := Recommend(scoresWith(tt.pct, tt.pct, tt.pct, 0))
		require.NoError(t, err)
		for _, r := range recs[:3] {
			assert.Equal(t, tt.priority, r.Priority, "pct=%d type=%s", tt.pct, r.Type)
		}
	}
}

func TestRecommend_Texts(t *testing.T) {
	recs, err := Recommend(scoresWith(20, 55, 75, 0))
	require.NoError(t, err)

	assert.Contains(t, recs[0].Text, "strategic pivot")
	assert.Contains(t, recs[1].Text, "profit enhancement")
	assert.Contains(t, recs[2].Text, "refine operational excellence")

	recs, err = Recommend(scoresWith(75, 20, 55, 0))
	require.NoError(t, err)
	assert.Contains(t, recs[0].Text, "sustaining momentum")
	assert.Contains(t, recs[1].Text, "financial restructuring")
	assert.Contains(t, recs[2].Text, "Strengthen management structure")

	recs, err = Recommend(scoresWith(55, 75, 20, 0))
	require.NoError(t, err)
	assert.Contains(t, recs[0].Text, "market development and expansion")
	assert.Contains(t, recs[1].Text, "maintaining strong financial performance")
	assert.Contains(t, recs[2].Text, "Formalize business systems")
}

func TestExitAdvisory_Boundaries(t *testing.T) {
	tests := []struct {
		overall  int
		contains string
	}{
		{0, "2-3 years"},
		{49, "2-3 years"},
		{50, "12-18 months"},
		{69, "12-18 months"},
		{70, "exploring market opportunities now"},
		{100, "exploring market opportunities now"},
	}

	for _, tt := range tests {
		r := ExitAdvisory(tt.overall)
		assert.Equal(t, RecommendationExit, r.Type)
		assert.Equal(t, PriorityAdvisory, r.Priority)
		assert.Contains(t, r.Text, tt.contains, "overall=%d", tt.overall)
	}
}

func TestRecommend_ExitBandsDifferFromDimensionBands(t *testing.T) {
	// 45 is medium for a dimension but still the lowest exit band
	recs, err := Recommend(scoresWith(45, 45, 45, 45))
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, recs[0].Priority)
	assert.Contains(t, recs[3].Text, "2-3 years")
}

func TestRecommend_MissingSection(t *testing.T) {
	scores := scoresWith(50, 50, 50, 50)
	delete(scores.Sections, SectionFinancialHealth)

	_, err := Recommend(scores)
	assert.ErrorIs(t, err, ErrMissingSection)
}

func TestExitReady(t *testing.T) {
	assert.False(t, ExitReady(scoresWith(0, 0, 0, 69)))
	assert.True(t, ExitReady(scoresWith(0, 0, 0, 70)))
}
