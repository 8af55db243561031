package instrument

import (
	"time"

	"github.com/kbukum/amalfi/config"
	"github.com/kbukum/amalfi/errors"
	"github.com/kbukum/amalfi/validation"
	"github.com/kbukum/amalfi/version"
)

// Config is the instrumentation configuration.
//
//	name: ingest
//	environment: production
//	logging:
//	  level: debug
//	  format: json
//	tracing:
//	  enabled: true
//	  endpoint: otel-collector:4318
//	  sample_rate: 0.25
//	metrics:
//	  enabled: true
//	  interval: 30s
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Tracing              TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics              MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = c.Tracing.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
}

// Validate checks the base fields and the struct tags. Failures are
// INVALID_CONFIG errors.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.InvalidConfig(err.Error()).WithCause(err)
	}
	return validation.Validate(c)
}

// Load reads, defaults and validates the configuration for name.
func Load(name string, opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.Load(name, &cfg, opts...); err != nil {
		return nil, errors.InvalidConfig("loading configuration").WithCause(err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
