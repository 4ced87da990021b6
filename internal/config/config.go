package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPath is the configuration file read when PANTRY_CONFIG is unset.
const DefaultPath = "config.json"

// Supported storage drivers.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Logger    LoggerConfig    `json:"logger"`
	RateLimit RateLimitConfig `json:"rateLimit"`
	Watcher   WatcherConfig   `json:"watcher"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig selects the storage driver and holds its connection settings.
type DatabaseConfig struct {
	Driver   string         `json:"driver"`
	Mongo    MongoConfig    `json:"mongodb"`
	Postgres PostgresConfig `json:"postgres"`
}

// MongoConfig holds MongoDB connection settings. Host may also be a full
// mongodb:// or mongodb+srv:// URI.
type MongoConfig struct {
	DB         string `json:"db"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	AuthSource string `json:"authSource"`
	Timeout    int    `json:"timeout"` // seconds
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	User            string `json:"user"`
	Password        string `json:"password"`
	Database        string `json:"database"`
	MaxConnections  int    `json:"maxConnections"`
	MinConnections  int    `json:"minConnections"`
	MaxConnLifetime int    `json:"maxConnLifetime"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "json" or "console"
}

// RateLimitConfig holds per-client request rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Burst             int     `json:"burst"`
}

// WatcherConfig holds the expiry watcher schedule.
type WatcherConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// Default returns the configuration used for any value the file leaves out.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Database: DatabaseConfig{
			Driver: DriverMongo,
			Mongo: MongoConfig{
				DB:      "pantry",
				Host:    "localhost",
				Port:    27017,
				Timeout: 10,
			},
			Postgres: PostgresConfig{
				Host:            "localhost",
				Port:            5432,
				User:            "postgres",
				Database:        "pantry",
				MaxConnections:  10,
				MinConnections:  1,
				MaxConnLifetime: 300,
			},
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Watcher: WatcherConfig{
			Enabled:  true,
			Schedule: "@every 1h",
		},
	}
}

// Path returns the configuration file path, honouring PANTRY_CONFIG.
func Path() string {
	return getEnv("PANTRY_CONFIG", DefaultPath)
}

// Load reads the JSON configuration file at path, applies .env and
// environment overrides and validates the result. A missing, unreadable or
// malformed file is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt("SERVER_PORT", c.Server.Port)
	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnv("LOG_FORMAT", c.Logger.Format)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Mongo.Host = getEnv("MONGODB_HOST", c.Database.Mongo.Host)
	c.Database.Mongo.DB = getEnv("MONGODB_DB", c.Database.Mongo.DB)
	c.Database.Postgres.Password = getEnv("DB_PASSWORD", c.Database.Postgres.Password)
	c.RateLimit.Enabled = getEnvAsBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.Watcher.Enabled = getEnvAsBool("WATCHER_ENABLED", c.Watcher.Enabled)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.Mongo.Host == "" {
			return fmt.Errorf("mongodb host is required")
		}
		if c.Database.Mongo.DB == "" {
			return fmt.Errorf("mongodb database name is required")
		}
		if !c.Database.Mongo.isURI() && (c.Database.Mongo.Port < 1 || c.Database.Mongo.Port > 65535) {
			return fmt.Errorf("invalid mongodb port: %d", c.Database.Mongo.Port)
		}
	case DriverPostgres:
		pg := c.Database.Postgres
		if pg.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if pg.Port < 1 || pg.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", pg.Port)
		}
		if pg.User == "" {
			return fmt.Errorf("database user is required")
		}
		if pg.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if pg.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if pg.MinConnections < 1 {
			return fmt.Errorf("database min connections must be at least 1")
		}
		if pg.MinConnections > pg.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be %s or %s)", c.Database.Driver, DriverMongo, DriverPostgres)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit requests per second must be positive")
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate limit burst must be at least 1")
		}
	}

	if c.Watcher.Enabled && c.Watcher.Schedule == "" {
		return fmt.Errorf("watcher schedule is required when the watcher is enabled")
	}

	return nil
}

// URI returns the MongoDB connection URI.
func (c *MongoConfig) URI() string {
	if c.isURI() {
		return c.Host
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/",
	}
	if c.Username != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	}
	if c.AuthSource != "" {
		u.RawQuery = url.Values{"authSource": []string{c.AuthSource}}.Encode()
	}
	return u.String()
}

func (c *MongoConfig) isURI() bool {
	return strings.HasPrefix(c.Host, "mongodb://") || strings.HasPrefix(c.Host, "mongodb+srv://")
}

// ConnectionString returns the PostgreSQL connection string.
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
