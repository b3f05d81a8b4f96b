package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const DefaultDatasetURL = "https://raw.githubusercontent.com/bronsonnh/streamlit_repo/main/earthquake_updated_2fin.csv"

type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	RateLimitRPS    int
	ShutdownTimeout time.Duration
}

// DatasetConfig selects where the event table is loaded from. URL is used
// by the "http" source, Path by "file" and "sqlite".
type DatasetConfig struct {
	Source  string
	URL     string
	Path    string
	Timeout time.Duration
}

type DashboardConfig struct {
	HistogramBins int
	DefaultTopN   int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	source := getEnv("DATASET_SOURCE", "http")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 5),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Dataset: DatasetConfig{
			Source:  source,
			URL:     getEnv("DATASET_URL", DefaultDatasetURL),
			Path:    getEnv("DATASET_PATH", defaultDatasetPath(source)),
			Timeout: getEnvDuration("DATASET_TIMEOUT", 15*time.Second),
		},
		Dashboard: DashboardConfig{
			HistogramBins: getEnvInt("HISTOGRAM_BINS", 30),
			DefaultTopN:   getEnvInt("DEFAULT_TOP_N", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	switch c.Dataset.Source {
	case "http":
		if c.Dataset.URL == "" {
			return fmt.Errorf("DATASET_URL is required for the http source")
		}
	case "file", "sqlite":
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for the %s source", c.Dataset.Source)
		}
	default:
		return fmt.Errorf("invalid dataset source: %s", c.Dataset.Source)
	}
	if c.Dataset.Timeout <= 0 {
		return fmt.Errorf("dataset timeout must be positive")
	}

	if c.Dashboard.HistogramBins < 1 || c.Dashboard.HistogramBins > 500 {
		return fmt.Errorf("invalid histogram bins: %d", c.Dashboard.HistogramBins)
	}
	if c.Dashboard.DefaultTopN < 1 {
		return fmt.Errorf("invalid default top n: %d", c.Dashboard.DefaultTopN)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

func defaultDatasetPath(source string) string {
	if source == "sqlite" {
		return "./data/earthquakes.db"
	}
	return "./data/earthquakes.csv"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
