// Package config loads settings from an optional YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the binaries.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
)

// Config represents the application configuration.
type Config struct {
	Storage   StorageConfig `yaml:"storage"`
	HTTP      HTTPConfig    `yaml:"http"`
	Kafka     KafkaConfig   `yaml:"kafka"`
	Currency  string        `yaml:"currency"`
	Timezone  string        `yaml:"timezone"`
	Debug     bool          `yaml:"debug"`
	LogFormat string        `yaml:"log_format"` // console or json
}

// StorageConfig selects the ledger store. DSN is a file path for sqlite
// and bolt, and a connection string for postgres.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// KafkaConfig enables entry event publishing when Brokers is not empty.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    "./data/udharbook.db",
		},
		HTTP:      HTTPConfig{Addr: ":8080"},
		Kafka:     KafkaConfig{Topic: "ledger_entry_recorded"},
		Currency:  money.INR,
		Timezone:  "Local",
		LogFormat: "console",
	}
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
// When UDHAR_CONFIG_FILE names a YAML file, its values replace the defaults
// before environment variables are applied.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	cfg := Default()
	if path := os.Getenv("UDHAR_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Storage.Driver = getEnvOrDefault("UDHAR_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.DSN = getEnvOrDefault("UDHAR_STORAGE_DSN", c.Storage.DSN)
	c.HTTP.Addr = getEnvOrDefault("UDHAR_HTTP_ADDR", c.HTTP.Addr)
	c.Kafka.Topic = getEnvOrDefault("UDHAR_KAFKA_TOPIC", c.Kafka.Topic)
	if brokers := os.Getenv("UDHAR_KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = splitList(brokers)
	}
	c.Currency = getEnvOrDefault("UDHAR_CURRENCY", c.Currency)
	c.Timezone = getEnvOrDefault("UDHAR_TIMEZONE", c.Timezone)
	c.LogFormat = getEnvOrDefault("UDHAR_LOG_FORMAT", c.LogFormat)
	if v := os.Getenv("DEBUG"); v != "" {
		c.Debug = v == "true"
	}
}

// Validate checks that the configuration can be used to start the app.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite, DriverBolt, DriverPostgres:
		if c.Storage.DSN == "" {
			problems = append(problems, fmt.Sprintf("storage.dsn is required for driver %q", c.Storage.Driver))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage driver %q", c.Storage.Driver))
	}

	if money.GetCurrency(c.Currency) == nil {
		problems = append(problems, fmt.Sprintf("unknown currency %q", c.Currency))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone %q", c.Timezone))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("log_format must be console or json, got %q", c.LogFormat))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		problems = append(problems, "kafka.topic is required when brokers are set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the time zone used to group entries by day.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
