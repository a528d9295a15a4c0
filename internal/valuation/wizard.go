// internal/valuation/wizard.go
package valuation

import "errors"

// Step is a page of the three-step calculator flow.
type Step int

const (
	StepDetails Step = iota + 1
	StepFinancials
	StepResults
)

var (
	ErrIndustryRequired = errors.New("industry must be selected before continuing")
	ErrResultsNotReady  = errors.New("results are only available on the results step")
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "Business Details"
	case StepFinancials:
		return "Financial Information"
	case StepResults:
		return "Valuation Results"
	default:
		return "unknown"
	}
}

// Wizard holds the interactive state of one calculator session.
// It is owned by a single caller and is not safe for concurrent use.
type Wizard struct {
	step        Step
	profile     BusinessProfile
	table       MultiplierTable
	currentYear int
}

// NewWizard starts on the details step with the calculator's default figures and no industry.
func NewWizard(table MultiplierTable, currentYear int) *Wizard {
	return &Wizard{
		step: StepDetails,
		profile: BusinessProfile{
			Revenue:           1000000,
			EBITDA:            250000,
			GrowthRatePercent: 15,
			EmployeeCount:     10,
			YearsOperating:    5,
		},
		table:       table,
		currentYear: currentYear,
	}
}

func (w *Wizard) Step() Step                { return w.step }
func (w *Wizard) Profile() BusinessProfile { return w.profile }

// SetIndustry selects an industry, which must exist in the wizard's table.
func (w *Wizard) SetIndustry(code IndustryCode) error {
	if _, err := w.table.Lookup(code); err != nil {
		return err
	}
	w.profile.Industry = code
	return nil
}

// SetProfile replaces the numeric fields, keeping the selected industry.
func (w *Wizard) SetProfile(p BusinessProfile) {
	industry := w.profile.Industry
	w.profile = p
	w.profile.Industry = industry
}

// CanAdvance reports whether Next would succeed.
func (w *Wizard) CanAdvance() bool {
	if w.step >= StepResults {
		return false
	}
	return w.step != StepDetails || w.profile.Industry != ""
}

// Next moves forward one step. Leaving the details step requires an industry.
func (w *Wizard) Next() error {
	if w.step == StepDetails && w.profile.Industry == "" {
		return ErrIndustryRequired
	}
	if w.step < StepResults {
		w.step++
	}
	return nil
}

// Back moves to the previous step, stopping at the first.
func (w *Wizard) Back() {
	if w.step > StepDetails {
		w.step--
	}
}

// Result computes the valuation for the current profile once the results step is reached.
func (w *Wizard) Result() (*Result, error) {
	if w.step != StepResults {
		return nil, ErrResultsNotReady
	}
	return Compute(w.profile, w.table, w.currentYear)
}
