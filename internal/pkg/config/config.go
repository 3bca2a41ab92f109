package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Verifier  VerifierConfig  `mapstructure:"verifier"`
	Search    SearchConfig    `mapstructure:"search"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// VerifierConfig points at the external verification oracle.
type VerifierConfig struct {
	URL       string `mapstructure:"url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

func (v VerifierConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutMS) * time.Millisecond
}

// SearchConfig bounds the read endpoints.
type SearchConfig struct {
	MaxResults    int     `mapstructure:"max_results"`
	DefaultRadius float64 `mapstructure:"default_radius"` // meters
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "places")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "places")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("verifier.url", "http://localhost:8081/verify")
	v.SetDefault("verifier.timeout_ms", 5000)
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.default_radius", 1000)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: PLACES_DATABASE_HOST → database.host
	v.SetEnvPrefix("PLACES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.Verifier.URL == "" {
		errs = append(errs, "verifier.url is required")
	}
	if c.Verifier.TimeoutMS <= 0 {
		errs = append(errs, "verifier.timeout_ms must be positive")
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, "search.max_results must be positive")
	}
	if c.Search.DefaultRadius <= 0 {
		errs = append(errs, "search.default_radius must be positive")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
