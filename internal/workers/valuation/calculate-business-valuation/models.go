// internal/workers/valuation/calculate-business-valuation/models.go
package calculatebusinessvaluation

type Input struct {
	Profile     Profile `json:"profile"`
	CurrentYear int     `json:"currentYear,omitempty"`
}

type Profile struct {
	Industry       string  `json:"industry"`
	Revenue        float64 `json:"revenue"`
	EBITDA         float64 `json:"ebitda"`
	GrowthRate     float64 `json:"growthRate"`
	Employees      int     `json:"employees"`
	YearsOperation int     `json:"yearsOperation"`
}

type Output struct {
	Valuation Valuation `json:"valuation"`
}

type Valuation struct {
	Industry          string           `json:"industry"`
	IndustryLabel     string           `json:"industryLabel"`
	TotalValue        float64          `json:"totalValue"`
	EBITDAMultiple    float64          `json:"ebitdaMultiple"`
	RevenuePercentage float64          `json:"revenuePercentage"`
	Projection        []ProjectionYear `json:"projection"`
}

type ProjectionYear struct {
	Year    int     `json:"year"`
	Revenue float64 `json:"revenue"`
	EBITDA  float64 `json:"ebitda"`
	Value   float64 `json:"value"`
}
