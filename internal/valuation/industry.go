// internal/valuation/industry.go
package valuation

import (
	"fmt"
	"strings"
)

// IndustryCode identifies an industry in the multiplier table.
type IndustryCode string

const (
	IndustryTechnology    IndustryCode = "technology"
	IndustryManufacturing IndustryCode = "manufacturing"
	IndustryHealthcare    IndustryCode = "healthcare"
	IndustryRetail        IndustryCode = "retail"
	IndustryServices      IndustryCode = "services"
)

// Industries lists every known industry in display order.
var Industries = []IndustryCode{
	IndustryTechnology,
	IndustryManufacturing,
	IndustryHealthcare,
	IndustryRetail,
	IndustryServices,
}

// ParseIndustry converts raw input into an IndustryCode, rejecting unknown codes.
func ParseIndustry(raw string) (IndustryCode, error) {
	code := IndustryCode(strings.ToLower(strings.TrimSpace(raw)))
	switch code {
	case IndustryTechnology, IndustryManufacturing, IndustryHealthcare, IndustryRetail, IndustryServices:
		return code, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIndustry, raw)
	}
}

// Label is the human readable name shown in the calculator.
func (c IndustryCode) Label() string {
	switch c {
	case IndustryTechnology:
		return "Technology"
	case IndustryManufacturing:
		return "Manufacturing"
	case IndustryHealthcare:
		return "Healthcare"
	case IndustryRetail:
		return "Retail"
	case IndustryServices:
		return "Professional Services"
	default:
		return string(c)
	}
}

// IndustryMultiplier holds the baseline EBITDA multiple and the weight applied to growth.
type IndustryMultiplier struct {
	Base         float64 `json:"base" mapstructure:"base"`
	GrowthFactor float64 `json:"growthFactor" mapstructure:"growth_factor"`
}

// MultiplierTable is the reference data consumed by Compute.
type MultiplierTable map[IndustryCode]IndustryMultiplier

// DefaultMultipliers returns a fresh copy of the reference multipliers.
func DefaultMultipliers() MultiplierTable {
	return MultiplierTable{
		IndustryTechnology:    {Base: 6.5, GrowthFactor: 0.4},
		IndustryManufacturing: {Base: 4.8, GrowthFactor: 0.2},
		IndustryHealthcare:    {Base: 7.2, GrowthFactor: 0.3},
		IndustryRetail:        {Base: 3.9, GrowthFactor: 0.15},
		IndustryServices:      {Base: 5.2, GrowthFactor: 0.25},
	}
}

// Lookup returns the multiplier for code or ErrUnknownIndustry.
func (t MultiplierTable) Lookup(code IndustryCode) (IndustryMultiplier, error) {
	m, ok := t[code]
	if !ok {
		return IndustryMultiplier{}, fmt.Errorf("%w: %q", ErrUnknownIndustry, string(code))
	}
	return m, nil
}

// WithOverrides returns a copy of t with entries replaced by overrides.
// Override keys must be known industry codes.
func (t MultiplierTable) WithOverrides(overrides map[string]IndustryMultiplier) (MultiplierTable, error) {
	out := make(MultiplierTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	for raw, m := range overrides {
		code, err := ParseIndustry(raw)
		if err != nil {
			return nil, err
		}
		out[code] = m
	}
	return out, nil
}
