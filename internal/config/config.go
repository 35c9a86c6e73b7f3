// Package config loads the simulation parameters from a yaml file, LATEMP_
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Chain  ChainConfig  `mapstructure:"chain" yaml:"chain"`
	Grid   GridConfig   `mapstructure:"grid" yaml:"grid"`
	Trace  TraceConfig  `mapstructure:"trace" yaml:"trace"`
}

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	// LogFile enables a rotated JSON log file in addition to the console.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// ChainConfig parameterizes the 1-D chain simulation.  Positions and
// Attractors default to the built-in dataset when both are empty.
type ChainConfig struct {
	Positions        []float64 `mapstructure:"positions" yaml:"positions"`
	Attractors       []float64 `mapstructure:"attractors" yaml:"attractors"`
	RepulsionWeight  float64   `mapstructure:"repulsion_weight" yaml:"repulsion_weight"`
	AttractionWeight float64   `mapstructure:"attraction_weight" yaml:"attraction_weight"`
	Rate             float64   `mapstructure:"rate" yaml:"rate"`
	QuenchEvery      int       `mapstructure:"quench_every" yaml:"quench_every"`
	QuenchFactor     float64   `mapstructure:"quench_factor" yaml:"quench_factor"`
	Iterations       int       `mapstructure:"iterations" yaml:"iterations"`
	GradTol          float64   `mapstructure:"grad_tol" yaml:"grad_tol"`
	LogEvery         int       `mapstructure:"log_every" yaml:"log_every"`
}

// GridConfig parameterizes the 2-D grid simulation.
type GridConfig struct {
	Positions        string  `mapstructure:"positions" yaml:"positions"`
	Attractors       string  `mapstructure:"attractors" yaml:"attractors"`
	Output           string  `mapstructure:"output" yaml:"output"`
	RepulsionWeight  float64 `mapstructure:"repulsion_weight" yaml:"repulsion_weight"`
	AttractionWeight float64 `mapstructure:"attraction_weight" yaml:"attraction_weight"`
	SmoothingWeight  float64 `mapstructure:"smoothing_weight" yaml:"smoothing_weight"`
	Bound            float64 `mapstructure:"bound" yaml:"bound"`
	Epsilon          float64 `mapstructure:"epsilon" yaml:"epsilon"`
	Iterations       int     `mapstructure:"iterations" yaml:"iterations"`
	GradTol          float64 `mapstructure:"grad_tol" yaml:"grad_tol"`
	LogEvery         int     `mapstructure:"log_every" yaml:"log_every"`
	// Method is "descent" for the bounded gradient descent or the name of a
	// gonum method ("lbfgs", "bfgs", "cg", "gd").
	Method string `mapstructure:"method" yaml:"method"`
	// MaxAnomalies caps the number of anomalies reported in the log.
	MaxAnomalies int `mapstructure:"max_anomalies" yaml:"max_anomalies"`
}

// TraceConfig enables recording every descent step into a sqlite database.
type TraceConfig struct {
	DB string `mapstructure:"db" yaml:"db"`
}

var methods = map[string]bool{"descent": true, "lbfgs": true, "bfgs": true, "cg": true, "gd": true}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "latemp")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("chain.repulsion_weight", 0.01)
	v.SetDefault("chain.attraction_weight", 1.0)
	v.SetDefault("chain.rate", 0.01)
	v.SetDefault("chain.quench_every", 3000)
	v.SetDefault("chain.quench_factor", 0.5)
	v.SetDefault("chain.iterations", 30000)
	v.SetDefault("chain.grad_tol", 0.0)
	v.SetDefault("chain.log_every", 3000)

	v.SetDefault("grid.output", "")
	v.SetDefault("grid.repulsion_weight", 1.0)
	v.SetDefault("grid.attraction_weight", 1.0)
	v.SetDefault("grid.smoothing_weight", 5.0)
	v.SetDefault("grid.bound", 0.001)
	v.SetDefault("grid.epsilon", 0.01)
	v.SetDefault("grid.iterations", 100000)
	v.SetDefault("grid.grad_tol", 0.0)
	v.SetDefault("grid.log_every", 10000)
	v.SetDefault("grid.method", "descent")
	v.SetDefault("grid.max_anomalies", 20)

	v.SetDefault("trace.db", "")
}

// NewDefaultConfig returns the configuration built from defaults alone.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the sections that every command depends on.  Input paths
// are checked by the grid command itself since other commands do not need
// them.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("chain: %w", err)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	return nil
}

func (c ChainConfig) Validate() error {
	if len(c.Positions) != len(c.Attractors) {
		return fmt.Errorf("%v positions but %v attractors", len(c.Positions), len(c.Attractors))
	}
	if c.Iterations < 0 {
		return errors.New("iterations must not be negative")
	}
	if c.Rate <= 0 {
		return errors.New("rate must be positive")
	}
	if c.QuenchEvery > 0 && (c.QuenchFactor <= 0 || c.QuenchFactor > 1) {
		return errors.New("quench_factor must be in (0, 1]")
	}
	return nil
}

func (g GridConfig) Validate() error {
	if g.Iterations < 0 {
		return errors.New("iterations must not be negative")
	}
	if g.Bound <= 0 {
		return errors.New("bound must be positive")
	}
	if g.Epsilon <= 0 {
		return errors.New("epsilon must be positive")
	}
	if !methods[g.Method] {
		return fmt.Errorf("unknown method %q", g.Method)
	}
	return nil
}

// ValidateInputs reports a missing input source.
func (g GridConfig) ValidateInputs() error {
	if g.Positions == "" {
		return errors.New("grid.positions is required")
	}
	if g.Attractors == "" {
		return errors.New("grid.attractors is required")
	}
	return nil
}
