// internal/workers/valuation/calculate-business-valuation/config.go
package calculatebusinessvaluation

import (
	"time"

	"business-advisor/internal/valuation"
)

type Config struct {
	Timeout     time.Duration
	Multipliers valuation.MultiplierTable
	// Now supplies the projection's first year when the job does not set currentYear.
	Now func() time.Time
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		Multipliers: valuation.DefaultMultipliers(),
		Now:         time.Now,
	}
}
