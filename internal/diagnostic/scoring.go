// internal/diagnostic/scoring.go
package diagnostic

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	ErrIncompleteAnswers = errors.New("incomplete answers")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrInvalidAnswer     = errors.New("invalid answer")
)

// AnswerSet maps question id to the selected option value.
type AnswerSet map[string]int

// Score is a raw sum and its share of the maximum possible, as a rounded percentage.
type Score struct {
	Raw        int `json:"raw"`
	Percentage int `json:"percentage"`
}

type SectionScore struct {
	Score
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// Scores holds every section's score and the overall score.
type Scores struct {
	Sections map[SectionID]SectionScore `json:"sections"`
	Overall  Score                      `json:"overall"`
}

// Band classifies a percentage for display.
func Band(percentage int) string {
	switch {
	case percentage >= 70:
		return "Strong"
	case percentage >= 40:
		return "Moderate"
	default:
		return "Needs Improvement"
	}
}

// ScoreAnswers totals answers per section and overall. Every question in the catalog must be answered
// with one of its option values; partial answer sets are rejected rather than scored as zero.
//
// The overall percentage is taken over all questions, not averaged across sections.
func ScoreAnswers(answers AnswerSet, catalog Catalog) (Scores, error) {
	if err := checkAnswers(answers, catalog); err != nil {
		return Scores{}, err
	}

	scores := Scores{Sections: make(map[SectionID]SectionScore, len(catalog.Sections))}
	total, totalQuestions := 0, 0
	for _, s := range catalog.Sections {
		raw := 0
		for _, q := range s.Questions {
			raw += answers[q.ID]
		}
		scores.Sections[s.ID] = SectionScore{
			Score:         Score{Raw: raw, Percentage: percentage(raw, len(s.Questions))},
			Title:         s.Title,
			QuestionCount: len(s.Questions),
		}
		total += raw
		totalQuestions += len(s.Questions)
	}
	scores.Overall = Score{Raw: total, Percentage: percentage(total, totalQuestions)}
	return scores, nil
}

func checkAnswers(answers AnswerSet, catalog Catalog) error {
	var missing []string
	for _, q := range catalog.Questions() {
		value, ok := answers[q.ID]
		if !ok {
			missing = append(missing, q.ID)
			continue
		}
		if !q.HasOption(value) {
			return fmt.Errorf("%w: %s=%d", ErrInvalidAnswer, q.ID, value)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteAnswers, strings.Join(missing, ", "))
	}

	var unknown []string
	for id := range answers {
		if _, ok := catalog.Question(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, strings.Join(unknown, ", "))
	}
	return nil
}

func percentage(raw, questions int) int {
	if questions == 0 {
		return 0
	}
	max := float64(questions * MaxOptionValue)
	return int(math.Floor(float64(raw)/max*100 + 0.5))
}
