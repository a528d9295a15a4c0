// Package valuation estimates a business's value from its EBITDA, growth, tenure and headcount,
// and projects that value over the following five years.
package valuation

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

var (
	ErrUnknownIndustry = errors.New("unknown industry")
	ErrDivisionByZero  = errors.New("division by zero")
)

const (
	// ProjectionYears is the number of future years in a projection; the series also holds the current year.
	ProjectionYears = 5

	experienceStep = 0.03
	experienceCap  = 1.3
	teamStep       = 0.005
	teamCap        = 1.2

	// Value compounds at 80% of the revenue growth rate to model multiple compression.
	valueGrowthDamping = 0.8
)

// BusinessProfile is the input snapshot for a single valuation.
// No cross-field validation is applied; sanitising inputs is the caller's job.
type BusinessProfile struct {
	Industry          IndustryCode `json:"industry"`
	Revenue           float64      `json:"revenue"`
	EBITDA            float64      `json:"ebitda"`
	GrowthRatePercent float64      `json:"growthRate"`
	EmployeeCount     int          `json:"employees"`
	YearsOperating    int          `json:"yearsOperation"`
}

// YearPoint is one entry of the projection series.
type YearPoint struct {
	Year    int     `json:"year"`
	Revenue float64 `json:"revenue"`
	EBITDA  float64 `json:"ebitda"`
	Value   float64 `json:"value"`
}

// Result is the outcome of Compute. It is never mutated after being returned.
type Result struct {
	TotalValue        float64     `json:"totalValue"`
	EBITDAMultiple    float64     `json:"ebitdaMultiple"`
	RevenuePercentage float64     `json:"revenuePercentage"`
	Projection        []YearPoint `json:"projection"`
}

// ExperienceMultiplier adds 3% per year operating, capped at 30%.
func ExperienceMultiplier(yearsOperating int) float64 {
	return math.Min(1+float64(yearsOperating)*experienceStep, experienceCap)
}

// TeamMultiplier adds 0.5% per employee, capped at 20%.
func TeamMultiplier(employeeCount int) float64 {
	return math.Min(1+float64(employeeCount)*teamStep, teamCap)
}

// GrowthAdjustment weights the growth rate (per 10 points) by the industry growth factor.
func GrowthAdjustment(growthRatePercent float64, m IndustryMultiplier) float64 {
	return (growthRatePercent / 10) * m.GrowthFactor
}

// Compute values profile against table. currentYear seeds the projection's first year.
//
// The final value is carried unrounded: the total, the ratios and every projection point
// are each rounded from it independently.
func Compute(profile BusinessProfile, table MultiplierTable, currentYear int) (*Result, error) {
	multiplier, err := table.Lookup(profile.Industry)
	if err != nil {
		return nil, err
	}
	if profile.EBITDA == 0 {
		return nil, fmt.Errorf("%w: ebitda is zero", ErrDivisionByZero)
	}
	if profile.Revenue == 0 {
		return nil, fmt.Errorf("%w: revenue is zero", ErrDivisionByZero)
	}

	finalValue := estimate(profile, multiplier)

	return &Result{
		TotalValue:        round(finalValue),
		EBITDAMultiple:    roundTo(finalValue/profile.EBITDA, 2),
		RevenuePercentage: roundTo(finalValue/profile.Revenue*100, 1),
		Projection:        project(profile, finalValue, currentYear),
	}, nil
}

func estimate(p BusinessProfile, m IndustryMultiplier) float64 {
	baseValue := p.EBITDA * m.Base
	return baseValue *
		(1 + GrowthAdjustment(p.GrowthRatePercent, m)) *
		ExperienceMultiplier(p.YearsOperating) *
		TeamMultiplier(p.EmployeeCount)
}

func project(p BusinessProfile, finalValue float64, currentYear int) []YearPoint {
	points := make([]YearPoint, 0, ProjectionYears+1)
	for i := 0; i <= ProjectionYears; i++ {
		growth := math.Pow(1+p.GrowthRatePercent/100, float64(i))
		valueGrowth := math.Pow(1+(p.GrowthRatePercent*valueGrowthDamping)/100, float64(i))
		points = append(points, YearPoint{
			Year:    currentYear + i,
			Revenue: round(p.Revenue * growth),
			EBITDA:  round(p.EBITDA * growth),
			Value:   round(finalValue * valueGrowth),
		})
	}
	return points
}

// round is half-up, so -2.5 rounds to -2.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// roundTo rounds half-up on the exact value of x. Scaling by 10^places in
// float64 first would round twice, turning 313.94999... into 314.0.
func roundTo(x float64, places int) float64 {
	exact := new(big.Rat).SetFloat64(x)
	if exact == nil {
		return x
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	// floor((num*scale*2 + den) / (den*2)); Int.Div floors for a positive divisor.
	num := new(big.Int).Mul(exact.Num(), scale)
	num.Lsh(num, 1).Add(num, exact.Denom())
	den := new(big.Int).Lsh(exact.Denom(), 1)
	n := new(big.Int).Div(num, den)
	f, _ := new(big.Rat).SetFrac(n, scale).Float64()
	return f
}
