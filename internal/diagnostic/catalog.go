// Package diagnostic scores the business readiness questionnaire and derives recommendations.
package diagnostic

import (
	"errors"
	"fmt"
)

// MaxOptionValue is the highest score a single answer can carry.
const MaxOptionValue = 5

// SectionID names a scored dimension of the questionnaire.
type SectionID string

const (
	SectionGrowthPotential      SectionID = "growthPotential"
	SectionFinancialHealth      SectionID = "financialHealth"
	SectionOperationalReadiness SectionID = "operationalReadiness"
)

// Option is one selectable answer.
type Option struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Question belongs to exactly one section.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value int) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

type Section struct {
	ID        SectionID  `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Catalog is an ordered set of sections. Question ids are unique across the catalog.
type Catalog struct {
	Sections []Section `json:"sections"`
}

// IndexedQuestion is a question flattened out of its section, used for navigation.
type IndexedQuestion struct {
	Question
	Section      SectionID
	SectionTitle string
}

// Questions flattens the catalog in section order.
func (c Catalog) Questions() []IndexedQuestion {
	var out []IndexedQuestion
	for _, s := range c.Sections {
		for _, q := range s.Questions {
			out = append(out, IndexedQuestion{Question: q, Section: s.ID, SectionTitle: s.Title})
		}
	}
	return out
}

// TotalQuestions counts questions across all sections.
func (c Catalog) TotalQuestions() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Questions)
	}
	return n
}

// Question finds a question by id.
func (c Catalog) Question(id string) (Question, bool) {
	for _, s := range c.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// Validate checks the catalog is usable for scoring.
func (c Catalog) Validate() error {
	if len(c.Sections) == 0 {
		return errors.New("catalog has no sections")
	}
	seenSections := make(map[SectionID]bool)
	seenQuestions := make(map[string]bool)
	for _, s := range c.Sections {
		if seenSections[s.ID] {
			return fmt.Errorf("duplicate section %q", s.ID)
		}
		seenSections[s.ID] = true
		if len(s.Questions) == 0 {
			return fmt.Errorf("section %q has no questions", s.ID)
		}
		for _, q := range s.Questions {
			if seenQuestions[q.ID] {
				return fmt.Errorf("duplicate question %q", q.ID)
			}
			seenQuestions[q.ID] = true
			if len(q.Options) == 0 {
				return fmt.Errorf("question %q has no options", q.ID)
			}
			for _, o := range q.Options {
				if o.Value < 1 || o.Value > MaxOptionValue {
					return fmt.Errorf("question %q option %d out of range 1..%d", q.ID, o.Value, MaxOptionValue)
				}
			}
		}
	}
	return nil
}

// DefaultCatalog returns the readiness question bank.
func DefaultCatalog() Catalog {
	return Catalog{Sections: []Section{
		{
			ID:    SectionGrowthPotential,
			Title: "Growth Potential",
			Questions: []Question{
				{
					ID:   "marketPosition",
					Text: "How would you describe your current market position?",
					Options: []Option{
						{1, "Struggling to establish presence"},
						{2, "Small but stable market share"},
						{3, "Growing steadily"},
						{4, "Established with strong reputation"},
						{5, "Market leader in our niche"},
					},
				},
				{
					ID:   "growthRate",
					Text: "What is your annual revenue growth rate?",
					Options: []Option{
						{1, "Flat or declining (<0%)"},
						{2, "Slow growth (0-5%)"},
						{3, "Moderate growth (5-15%)"},
						{4, "Strong growth (15-30%)"},
						{5, "Rapid growth (>30%)"},
					},
				},
				{
					ID:   "marketTrend",
					Text: "How is the overall market trend for your industry?",
					Options: []Option{
						{1, "Declining significantly"},
						{2, "Slight decline"},
						{3, "Stable"},
						{4, "Growing steadily"},
						{5, "Rapid growth/emerging market"},
					},
				},
			},
		},
		{
			ID:    SectionFinancialHealth,
			Title: "Financial Health",
			Questions: []Question{
				{
					ID:   "profitability",
					Text: "How would you describe your current profitability?",
					Options: []Option{
						{1, "Consistently unprofitable"},
						{2, "Break-even or occasional profit"},
						{3, "Moderately profitable"},
						{4, "Consistently profitable"},
						{5, "Highly profitable (>20% margin)"},
					},
				},
				{
					ID:   "cashFlow",
					Text: "How stable is your cash flow?",
					Options: []Option{
						{1, "Frequently negative cash flow"},
						{2, "Occasionally negative cash flow"},
						{3, "Generally stable"},
						{4, "Consistently positive"},
						{5, "Strong positive with significant reserves"},
					},
				},
				{
					// Options are listed best-first in the questionnaire.
					ID:   "financingNeeds",
					Text: "What are your current financing needs?",
					Options: []Option{
						{5, "Self-funding with surplus"},
						{4, "Self-funding, stable"},
						{3, "Moderate external funding needs"},
						{2, "Significant funding required"},
						{1, "Urgent capital required"},
					},
				},
			},
		},
		{
			ID:    SectionOperationalReadiness,
			Title: "Operational Readiness",
			Questions: []Question{
				{
					ID:   "systemsProcesses",
					Text: "How formalized are your business systems and processes?",
					Options: []Option{
						{1, "Ad-hoc/informal processes"},
						{2, "Basic documentation and systems"},
						{3, "Moderately developed systems"},
						{4, "Well-documented and efficient"},
						{5, "Optimized, scalable processes"},
					},
				},
				{
					ID:   "teamStructure",
					Text: "How developed is your management team structure?",
					Options: []Option{
						{1, "Owner-operated, no formal management"},
						{2, "Basic team with high owner dependency"},
						{3, "Developing team with moderate delegation"},
						{4, "Strong team with key positions filled"},
						{5, "Complete team operating independently"},
					},
				},
				{
					ID:   "customerDiversity",
					Text: "How diverse is your customer base?",
					Options: []Option{
						{1, "Highly concentrated (1-2 major customers)"},
						{2, "Several key accounts (>50% of revenue)"},
						{3, "Moderate diversity"},
						{4, "Well-diversified customer base"},
						{5, "Highly diversified across markets/segments"},
					},
				},
			},
		},
	}}
}
