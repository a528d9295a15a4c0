// internal/diagnostic/recommend.go
package diagnostic

import (
	"errors"
	"fmt"
)

var ErrMissingSection = errors.New("missing section score")

// RecommendationType is the dimension a recommendation addresses.
type RecommendationType string

const (
	RecommendationGrowth      RecommendationType = "growth"
	RecommendationFinancial   RecommendationType = "financial"
	RecommendationOperational RecommendationType = "operational"
	RecommendationExit        RecommendationType = "exit"
)

type Priority string

const (
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityAdvisory Priority = "advisory"
)

type Recommendation struct {
	Type     RecommendationType `json:"type"`
	Priority Priority           `json:"priority"`
	Text     string             `json:"text"`
}

// Per-dimension bands: below 40, 40 to 69, 70 and above.
// The exit advisory uses 50 and 70 instead.
const (
	dimensionMediumFrom = 40
	dimensionLowFrom    = 70
	exitMiddleFrom      = 50
	exitTopFrom         = 70
)

// bandTexts holds the high, medium and low priority texts of a dimension.
type bandTexts [3]string

type dimension struct {
	section SectionID
	kind    RecommendationType
	texts   bandTexts
}

// dimensions is in render order.
var dimensions = []dimension{
	{
		section: SectionGrowthPotential,
		kind:    RecommendationGrowth,
		texts: bandTexts{
			"Consider strategic pivot or market repositioning to find growth opportunities.",
			"Invest in market development and expansion strategies to accelerate growth.",
			"Focus on sustaining momentum and exploring adjacent market opportunities.",
		},
	},
	{
		section: SectionFinancialHealth,
		kind:    RecommendationFinancial,
		texts: bandTexts{
			"Prioritize financial restructuring and stabilization before considering exit options.",
			"Implement profit enhancement strategies to improve financial attractiveness.",
			"Focus on maintaining strong financial performance while preparing for potential exit.",
		},
	},
	{
		section: SectionOperationalReadiness,
		kind:    RecommendationOperational,
		texts: bandTexts{
			"Formalize business systems and reduce owner dependency before considering exit.",
			"Strengthen management structure and operational documentation for better transition readiness.",
			"Further refine operational excellence to maximize business value upon exit.",
		},
	},
}

var exitTexts = bandTexts{
	"Your business may need 2-3 years of strategic preparation before optimal exit readiness.",
	"With targeted improvements, your business could be exit-ready within 12-18 months.",
	"Your business shows strong exit readiness. Consider exploring market opportunities now.",
}

// Recommend derives one recommendation per scored dimension followed by the exit advisory,
// always in the order growth, financial, operational, exit.
func Recommend(scores Scores) ([]Recommendation, error) {
	out := make([]Recommendation, 0, len(dimensions)+1)
	for _, d := range dimensions {
		s, ok := scores.Sections[d.section]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, d.section)
		}
		out = append(out, dimensionRecommendation(d, s.Percentage))
	}
	out = append(out, ExitAdvisory(scores.Overall.Percentage))
	return out, nil
}

func dimensionRecommendation(d dimension, pct int) Recommendation {
	switch {
	case pct < dimensionMediumFrom:
		return Recommendation{Type: d.kind, Priority: PriorityHigh, Text: d.texts[0]}
	case pct < dimensionLowFrom:
		return Recommendation{Type: d.kind, Priority: PriorityMedium, Text: d.texts[1]}
	default:
		return Recommendation{Type: d.kind, Priority: PriorityLow, Text: d.texts[2]}
	}
}

// ExitAdvisory selects the exit timeline text for an overall percentage.
func ExitAdvisory(overall int) Recommendation {
	r := Recommendation{Type: RecommendationExit, Priority: PriorityAdvisory}
	switch {
	case overall < exitMiddleFrom:
		r.Text = exitTexts[0]
	case overall < exitTopFrom:
		r.Text = exitTexts[1]
	default:
		r.Text = exitTexts[2]
	}
	return r
}

// ExitReady reports whether the overall score reaches the top exit band.
func ExitReady(scores Scores) bool {
	return scores.Overall.Percentage >= exitTopFrom
}
