package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sample store backends
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Dashboard DashboardConfig
	Webhook   WebhookConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Monitor   MonitorConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DashboardConfig controls where sensor histories are fetched from and how
// they are rendered.
type DashboardConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Path            string        `mapstructure:"path"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	Debug           bool          `mapstructure:"debug"`
	Strict          bool          `mapstructure:"strict"`
	StatusThreshold float64       `mapstructure:"status_threshold"`
}

type WebhookConfig struct {
	URLBase   string           `mapstructure:"url_base"`
	Store     string           `mapstructure:"store"`
	WriteDir  string           `mapstructure:"write_dir"`
	HistLen   int              `mapstructure:"hist_len"`
	Endpoints []EndpointConfig `mapstructure:"endpoints"`
	// WriteKey and ReadKey add one more endpoint, handy from the environment.
	WriteKey string `mapstructure:"write_key"`
	ReadKey  string `mapstructure:"read_key"`
}

type EndpointConfig struct {
	WriteKey string `mapstructure:"write_key"`
	ReadKey  string `mapstructure:"read_key"`
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// MonitorConfig drives the periodic health check of a sensor history.
type MonitorConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	Interval      time.Duration `mapstructure:"interval"`
	Timeout       time.Duration `mapstructure:"timeout"`
	DiffThreshold float64       `mapstructure:"diff_threshold"`
	DiffsToCheck  int           `mapstructure:"diffs_to_check"`
	MaxAge        time.Duration `mapstructure:"max_age"`
	Subject       string        `mapstructure:"subject"`
	NotifyURL     string        `mapstructure:"notify_url"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("POWERMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Dashboard defaults
	viper.SetDefault("dashboard.endpoint", "http://localhost:8080")
	viper.SetDefault("dashboard.path", "/webhook/get/")
	viper.SetDefault("dashboard.fetch_timeout", "0s")
	viper.SetDefault("dashboard.debug", false)
	viper.SetDefault("dashboard.strict", false)
	viper.SetDefault("dashboard.status_threshold", 10)

	// Webhook catcher defaults
	viper.SetDefault("webhook.url_base", "webhook")
	viper.SetDefault("webhook.store", StoreFile)
	viper.SetDefault("webhook.write_dir", "temp_dir")
	viper.SetDefault("webhook.hist_len", 1000)
	viper.SetDefault("webhook.write_key", "")
	viper.SetDefault("webhook.read_key", "")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.key_prefix", "powermon:samples:")

	// Database defaults
	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.user", "")
	viper.SetDefault("database.postgres.password", "")
	viper.SetDefault("database.postgres.dbname", "powermon")
	viper.SetDefault("database.postgres.sslmode", "disable")

	// Monitor defaults
	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.url", "")
	viper.SetDefault("monitor.interval", "15m")
	viper.SetDefault("monitor.timeout", "1s")
	viper.SetDefault("monitor.diff_threshold", 10)
	viper.SetDefault("monitor.diffs_to_check", 4)
	viper.SetDefault("monitor.max_age", "24h")
	viper.SetDefault("monitor.subject", "ALERT: Power Sensor Monitor")
	viper.SetDefault("monitor.notify_url", "")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

func validateConfig(config *Config) error {
	if config.Dashboard.Endpoint == "" {
		return fmt.Errorf("dashboard endpoint is required")
	}
	if config.Dashboard.StatusThreshold <= 0 {
		return fmt.Errorf("dashboard status_threshold must be positive")
	}
	if config.Monitor.DiffThreshold <= 0 {
		return fmt.Errorf("monitor diff_threshold must be positive")
	}
	switch config.Webhook.Store {
	case StoreFile, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("unknown webhook store %q", config.Webhook.Store)
	}
	if config.Webhook.HistLen <= 0 {
		return fmt.Errorf("webhook hist_len must be positive")
	}
	if config.Webhook.Store == StoreFile && config.Webhook.WriteDir == "" {
		return fmt.Errorf("webhook write_dir is required for the file store")
	}
	if (config.Webhook.WriteKey == "") != (config.Webhook.ReadKey == "") {
		return fmt.Errorf("webhook write_key and read_key must be set together")
	}
	for i, ep := range config.Webhook.Endpoints {
		if ep.WriteKey == "" || ep.ReadKey == "" {
			return fmt.Errorf("webhook endpoint %d needs both write_key and read_key", i)
		}
	}
	if config.Monitor.Enabled {
		if config.Monitor.URL == "" {
			return fmt.Errorf("monitor url is required when the monitor is enabled")
		}
		if config.Monitor.Interval <= 0 {
			return fmt.Errorf("monitor interval must be positive")
		}
	}
	if config.Monitor.DiffsToCheck < 1 {
		return fmt.Errorf("monitor diffs_to_check must be at least 1")
	}
	return nil
}

// AllEndpoints returns the configured endpoints plus the single
// write_key/read_key pair when it is set.
func (w WebhookConfig) AllEndpoints() []EndpointConfig {
	out := append([]EndpointConfig{}, w.Endpoints...)
	if w.WriteKey != "" {
		out = append(out, EndpointConfig{WriteKey: w.WriteKey, ReadKey: w.ReadKey})
	}
	return out
}
