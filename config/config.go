package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string `yaml:"database_url"`

	// Logging
	LogLevel string `yaml:"log_level"`

	Generation Generation `yaml:"generation"`
	Backtest   Backtest   `yaml:"backtest"`

	// Environment, "development", "production" or "test"
	Environment string `yaml:"environment"`
}

// Generation configures combination generation defaults
type Generation struct {
	// Count is how many combinations to generate per strategy
	Count int `yaml:"count"`
	// RecentWeight biases frequency-based strategies toward recent draws
	RecentWeight float64 `yaml:"recent_weight"`
}

// Backtest configures backtesting defaults
type Backtest struct {
	// HoldOut is the walk-forward test window in draws
	HoldOut int `yaml:"hold_out"`
	// PerDraw is how many combinations each strategy generates per test draw
	PerDraw int `yaml:"per_draw"`
	// MinTrain is the minimum training sample before a draw is evaluated
	MinTrain int `yaml:"min_train"`
	// TestRatio is the test share used by ratio-split backtests
	TestRatio float64 `yaml:"test_ratio"`
	// Seed drives strategy RNGs for reproducible runs
	Seed int64 `yaml:"seed"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load reads the optional YAML config file, then applies environment
// overrides. The file path comes from LOTOLAB_CONFIG and defaults to
// config.yaml in the working directory.
func load() (*Config, error) {
	config := defaults()

	path := os.Getenv("LOTOLAB_CONFIG")
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine, environment variables take over
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Environment overrides
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.DatabaseURL = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		config.Environment = env
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	// DATABASE_URL stays optional here: CSV-backed commands run without a
	// database, and the commands that need one check for it themselves.

	return config, nil
}

// defaults returns the built-in configuration
func defaults() *Config {
	return &Config{
		LogLevel: "info",
		Generation: Generation{
			Count:        10,
			RecentWeight: 0.6,
		},
		Backtest: Backtest{
			HoldOut:   20,
			PerDraw:   10,
			MinTrain:  50,
			TestRatio: 0.3,
			Seed:      1,
		},
	}
}
