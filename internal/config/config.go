// Package config provides application configuration loaded from files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/goharvest/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName   = "goharvest"
	defaultVersion       = "0.1.0"
	defaultEnvironment   = "development"
	defaultServerAddress = ":8094"
	defaultReadTimeout   = 10 * time.Second
	defaultWriteTimeout  = 10 * time.Second
	defaultIdleTimeout   = 60 * time.Second

	defaultDBHost    = "localhost"
	defaultDBPort    = 5432
	defaultDBUser    = "postgres"
	defaultDBName    = "goharvest"
	defaultDBSSLMode = "disable"

	defaultMarginRate     = 40.0
	defaultDigestInterval = 4 * time.Hour
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Digest   DigestConfig   `mapstructure:"digest"`
	Logging  logger.Config  `mapstructure:"logging"`
}

// AppConfig holds service-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsProduction reports whether the service runs in production mode.
func (a *AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection URL used by the migration tooling.
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	// JWTSecret is the shared HMAC secret used to verify bearer tokens.
	JWTSecret string `mapstructure:"jwt_secret"`
}

// IngestConfig holds ingestion pipeline settings.
type IngestConfig struct {
	// DefaultMarginRate is the margin percentage applied when a request does
	// not carry one.
	DefaultMarginRate float64 `mapstructure:"default_margin_rate"`
}

// DigestConfig holds scheduled digest settings.
type DigestConfig struct {
	// Enabled turns the background digest scheduler on. It defaults to on
	// outside production.
	Enabled bool `mapstructure:"enabled"`
	// Interval is the cadence between digest ticks.
	Interval time.Duration `mapstructure:"interval"`
	// WebhookURL is the destination for digest messages. Empty means the
	// sink is a no-op.
	WebhookURL string `mapstructure:"webhook_url"`
}

// Load reads configuration from the given file (optional), the environment,
// and built-in defaults.
func Load(cfgFile string) (*Config, error) {
	// .env is optional; environment variables win over file values.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GOHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/goharvest")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Digest is enabled by default outside production unless explicitly set.
	if !v.IsSet("digest.enabled") {
		cfg.Digest.Enabled = !cfg.App.IsProduction()
	}

	return &cfg, nil
}

// setDefaults applies default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", defaultServiceName)
	v.SetDefault("app.version", defaultVersion)
	v.SetDefault("app.environment", defaultEnvironment)

	v.SetDefault("server.address", defaultServerAddress)
	v.SetDefault("server.read_timeout", defaultReadTimeout)
	v.SetDefault("server.write_timeout", defaultWriteTimeout)
	v.SetDefault("server.idle_timeout", defaultIdleTimeout)

	v.SetDefault("database.host", defaultDBHost)
	v.SetDefault("database.port", defaultDBPort)
	v.SetDefault("database.user", defaultDBUser)
	v.SetDefault("database.name", defaultDBName)
	v.SetDefault("database.sslmode", defaultDBSSLMode)

	v.SetDefault("ingest.default_margin_rate", defaultMarginRate)

	v.SetDefault("digest.interval", defaultDigestInterval)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")
}
