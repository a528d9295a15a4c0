package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func uniformAnswers(catalog Catalog, value int) AnswerSet {
	answers := make(AnswerSet)
	for _, q := range catalog.Questions() {
		answers[q.ID] = value
	}
	return answers
}

func createMixedAnswers() AnswerSet {
	return AnswerSet{
		"marketPosition":    4,
		"growthRate":        3,
		"marketTrend":       2,
		"profitability":     5,
		"cashFlow":          4,
		"financingNeeds":    3,
		"systemsProcesses":  1,
		"teamStructure":     2,
		"customerDiversity": 3,
	}
}

// two sections with unequal question counts
func createUnevenCatalog() Catalog {
	opts := []Option{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}, {5, "e"}}
	return Catalog{Sections: []Section{
		{ID: "alpha", Title: "Alpha", Questions: []Question{{ID: "a1", Options: opts}}},
		{ID: "beta", Title: "Beta", Questions: []Question{
			{ID: "b1", Options: opts}, {ID: "b2", Options: opts}, {ID: "b3", Options: opts}, {ID: "b4", Options: opts},
		}},
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestScore_AllMaximum(t *testing.T) {
	catalog := DefaultCatalog()
	scores, err := ScoreAnswers(uniformAnswers(catalog, 5), catalog)
	require.NoError(t, err)

	for id, s := range scores.Sections {
		assert.Equal(t, 15, s.Raw, id)
		assert.Equal(t, 100, s.Percentage, id)
		assert.Equal(t, 3, s.QuestionCount, id)
	}
	assert.Equal(t, Score{Raw: 45, Percentage: 100}, scores.Overall)
}

func TestScore_AllMinimum(t *testing.T) {
	catalog := DefaultCatalog()
	scores, err := ScoreAnswers(uniformAnswers(catalog, 1), catalog)
	require.NoError(t, err)

	for id, s := range scores.Sections {
		assert.Equal(t, 20, s.Percentage, id)
	}
	assert.Equal(t, Score{Raw: 9, Percentage: 20}, scores.Overall)
}

func TestScore_AverageThreeGivesSixty(t *testing.T) {
	catalog := DefaultCatalog()
	scores, err := ScoreAnswers(uniformAnswers(catalog, 3), catalog)
	require.NoError(t, err)

	assert.Equal(t, 27, scores.Overall.Raw)
	assert.Equal(t, 60, scores.Overall.Percentage)
}

func TestScore_MixedAnswers(t *testing.T) {
	scores, err := ScoreAnswers(createMixedAnswers(), DefaultCatalog())
	require.NoError(t, err)

	tests := []struct {
		section    SectionID
		raw        int
		percentage int
		title      string
	}{
		{SectionGrowthPotential, 9, 60, "Growth Potential"},
		{SectionFinancialHealth, 12, 80, "Financial Health"},
		{SectionOperationalReadiness, 6, 40, "Operational Readiness"},
	}
	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			s := scores.Sections[tt.section]
			assert.Equal(t, tt.raw, s.Raw)
			assert.Equal(t, tt.percentage, s.Percentage)
			assert.Equal(t, tt.title, s.Title)
		})
	}
	// 27 of 45
	assert.Equal(t, Score{Raw: 27, Percentage: 60}, scores.Overall)
}

func TestScore_OverallIsNotAverageOfSections(t *testing.T) {
	catalog := createUnevenCatalog()
	answers := AnswerSet{"a1": 5, "b1": 1, "b2": 1, "b3": 1, "b4": 1}

	scores, err := ScoreAnswers(answers, catalog)
	require.NoError(t, err)

	assert.Equal(t, 100, scores.Sections["alpha"].Percentage)
	assert.Equal(t, 20, scores.Sections["beta"].Percentage)
	// 9 of 25, not (100+20)/2
	assert.Equal(t, 36, scores.Overall.Percentage)
}

func TestScore_OrderIndependent(t *testing.T) {
	catalog := DefaultCatalog()
	forward := make(AnswerSet)
	backward := make(AnswerSet)
	questions := catalog.Questions()
	values := []int{4, 3, 2, 5, 4, 3, 1, 2, 3}
	for i, q := range questions {
		forward[q.ID] = values[i]
	}
	for i := len(questions) - 1; i >= 0; i-- {
		backward[questions[i].ID] = values[i]
	}

	a, err := ScoreAnswers(forward, catalog)
	require.NoError(t, err)
	b, err := ScoreAnswers(backward, catalog)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ==========================
// Error Handling Tests
// ==========================

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a AnswerSet)
		expectErr error
	}{
		{"missing answer", func(a AnswerSet) { delete(a, "cashFlow") }, ErrIncompleteAnswers},
		{"empty answers", func(a AnswerSet) {
			for k := range a {
				delete(a, k)
			}
		}, ErrIncompleteAnswers},
		{"value above range", func(a AnswerSet) { a["cashFlow"] = 6 }, ErrInvalidAnswer},
		{"value below range", func(a AnswerSet) { a["teamStructure"] = 0 }, ErrInvalidAnswer},
		{"unknown question", func(a AnswerSet) { a["favouriteColour"] = 3 }, ErrUnknownQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := createMixedAnswers()
			tt.mutate(answers)

			_, err := ScoreAnswers(answers, DefaultCatalog())
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestScore_IncompleteListsMissingIDs(t *testing.T) {
	_, err := ScoreAnswers(AnswerSet{"marketPosition": 3}, DefaultCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "growthRate")
	assert.Contains(t, err.Error(), "customerDiversity")
	assert.NotContains(t, err.Error(), "marketPosition")
}

// ==========================
// Catalog Tests
// ==========================

func TestDefaultCatalog_Shape(t *testing.T) {
	catalog := DefaultCatalog()
	require.NoError(t, catalog.Validate())
	assert.Len(t, catalog.Sections, 3)
	assert.Equal(t, 9, catalog.TotalQuestions())

	questions := catalog.Questions()
	assert.Equal(t, "marketPosition", questions[0].ID)
	assert.Equal(t, SectionGrowthPotential, questions[0].Section)
	assert.Equal(t, "customerDiversity", questions[8].ID)
	assert.Equal(t, "Operational Readiness", questions[8].SectionTitle)

	q, ok := catalog.Question("financingNeeds")
	require.True(t, ok)
	assert.Equal(t, 5, q.Options[0].Value)
	assert.Equal(t, "Self-funding with surplus", q.Options[0].Text)
}

func TestCatalog_Validate(t *testing.T) {
	opts := []Option{{1, "one"}}
	tests := []struct {
		name    string
		catalog Catalog
		errMsg  string
	}{
		{"no sections", Catalog{}, "no sections"},
		{"empty section", Catalog{Sections: []Section{{ID: "s"}}}, "has no questions"},
		{"duplicate section", Catalog{Sections: []Section{
			{ID: "s", Questions: []Question{{ID: "q1", Options: opts}}},
			{ID: "s", Questions: []Question{{ID: "q2", Options: opts}}},
		}}, "duplicate section"},
		{"duplicate question", Catalog{Sections: []Section{
			{ID: "s", Questions: []Question{{ID: "q", Options: opts}, {ID: "q", Options: opts}}},
		}}, "duplicate question"},
		{"no options", Catalog{Sections: []Section{{ID: "s", Questions: []Question{{ID: "q"}}}}}, "no options"},
		{"option out of range", Catalog{Sections: []Section{
			{ID: "s", Questions: []Question{{ID: "q", Options: []Option{{7, "seven"}}}}},
		}}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBand(t *testing.T) {
	assert.Equal(t, "Needs Improvement", Band(39))
	assert.Equal(t, "Moderate", Band(40))
	assert.Equal(t, "Moderate", Band(69))
	assert.Equal(t, "Strong", Band(70))
}
