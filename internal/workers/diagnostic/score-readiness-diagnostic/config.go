// internal/workers/diagnostic/score-readiness-diagnostic/config.go
package scorereadinessdiagnostic

import (
	"time"

	"business-advisor/internal/diagnostic"
)

type Config struct {
	Timeout time.Duration
	Catalog diagnostic.Catalog
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Catalog: diagnostic.DefaultCatalog(),
	}
}
