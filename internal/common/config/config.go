// internal/common/config/config.go
package config

import (
	"fmt"

	"business-advisor/internal/valuation"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Server        ServerConfig            `mapstructure:"server"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Valuation     ValuationConfig         `mapstructure:"valuation"`
	// RegistryPath points at an activity registry file; empty selects the embedded one.
	RegistryPath  string                  `mapstructure:"registry_path"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ServerConfig is the health/metrics HTTP listener of the worker manager.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

type ObservabilityConfig struct {
	ServiceName string `mapstructure:"service_name"`
	// JaegerEndpoint enables trace export when set, e.g. http://localhost:14268/api/traces
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// ValuationConfig carries reference data overrides for the valuation engine.
type ValuationConfig struct {
	IndustryMultipliers map[string]valuation.IndustryMultiplier `mapstructure:"industry_multipliers"`
}

// MultiplierTable merges configured overrides onto the default industry multipliers.
func (c *Config) MultiplierTable() (valuation.MultiplierTable, error) {
	return valuation.DefaultMultipliers().WithOverrides(c.Valuation.IndustryMultipliers)
}

// ValidateForWorkers checks the settings only the worker manager depends on.
func (c *Config) ValidateForWorkers() error {
	if c.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	return nil
}
