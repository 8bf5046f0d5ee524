// Package config loads the service configuration from a YAML file with
// LAPTOPS_* environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration shared by the server and the benchmark.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Bench   BenchConfig   `yaml:"bench"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DataConfig points at the inventory table.
type DataConfig struct {
	Path     string `yaml:"path"`
	Encoding string `yaml:"encoding"`
}

// BenchConfig sizes the random inputs of the benchmark driver.
type BenchConfig struct {
	IDs       int   `yaml:"ids"`
	MinID     int   `yaml:"minId"`
	MaxID     int   `yaml:"maxId"`
	Amounts   int   `yaml:"amounts"`
	MinAmount int   `yaml:"minAmount"`
	MaxAmount int   `yaml:"maxAmount"`
	Seed      int64 `yaml:"seed"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles the /metrics route.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if path is not empty) over the defaults and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Data: DataConfig{
			Path:     "laptops.csv",
			Encoding: "ISO-8859-1",
		},
		Bench: BenchConfig{
			IDs:       10000,
			MinID:     0,
			MaxID:     1320,
			Amounts:   100,
			MinAmount: 100,
			MaxAmount: 5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate rejects settings the programs cannot run with.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Bench.IDs < 0 || c.Bench.Amounts < 0 {
		return fmt.Errorf("bench sample sizes must not be negative")
	}
	if c.Bench.MinID > c.Bench.MaxID {
		return fmt.Errorf("bench.minId %d exceeds bench.maxId %d", c.Bench.MinID, c.Bench.MaxID)
	}
	if c.Bench.MinAmount > c.Bench.MaxAmount {
		return fmt.Errorf("bench.minAmount %d exceeds bench.maxAmount %d", c.Bench.MinAmount, c.Bench.MaxAmount)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LAPTOPS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LAPTOPS_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("LAPTOPS_DATA_ENCODING"); v != "" {
		cfg.Data.Encoding = v
	}
	if v := os.Getenv("LAPTOPS_BENCH_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Bench.Seed = seed
		}
	}
	if v := os.Getenv("LAPTOPS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LAPTOPS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LAPTOPS_METRICS_ENABLED"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = on
		}
	}
}
