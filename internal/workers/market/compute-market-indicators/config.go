// internal/workers/market/compute-market-indicators/config.go
package computemarketindicators

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
