package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task tracker
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Profiles    ProfilesConfig    `toml:"profiles"`
	Stats       StatsConfig       `toml:"stats"`
	Reminders   RemindersConfig   `toml:"reminders"`
	Cache       CacheConfig       `toml:"cache"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// StorageConfig holds database-related configuration
type StorageConfig struct {
	Dir            string        `toml:"dir" env:"FT_DB_DIR"`
	Filename       string        `toml:"filename" env:"FT_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"FT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"FT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"FT_DB_DIR_PERMISSIONS"`
}

// ProfilesConfig holds the defaults applied to new profiles
type ProfilesConfig struct {
	DefaultName  string `toml:"default_name" env:"FT_PROFILE_DEFAULT_NAME"`
	DefaultIcon  string `toml:"default_icon" env:"FT_PROFILE_DEFAULT_ICON"`
	DefaultColor string `toml:"default_color" env:"FT_PROFILE_DEFAULT_COLOR"`
}

// StatsConfig holds the list sizes used by the dashboard
type StatsConfig struct {
	ChartTagLimit int `toml:"chart_tag_limit" env:"FT_STATS_CHART_TAGS"`
	TagListLimit  int `toml:"tag_list_limit" env:"FT_STATS_TAG_LIST"`
	RecentLimit   int `toml:"recent_limit" env:"FT_STATS_RECENT"`
}

// RemindersConfig holds the reminder scan settings
type RemindersConfig struct {
	Interval time.Duration `toml:"interval" env:"FT_REMIND_INTERVAL"`
}

// CacheConfig holds offline asset cache settings
type CacheConfig struct {
	Prefix       string        `toml:"prefix" env:"FT_CACHE_PREFIX"`
	Version      string        `toml:"version" env:"FT_CACHE_VERSION"`
	Origin       string        `toml:"origin" env:"FT_CACHE_ORIGIN"`
	Listen       string        `toml:"listen" env:"FT_CACHE_LISTEN"`
	FetchTimeout time.Duration `toml:"fetch_timeout" env:"FT_CACHE_FETCH_TIMEOUT"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level      string `toml:"level" env:"FT_LOG_LEVEL"`
	Format     string `toml:"format" env:"FT_LOG_FORMAT"`
	Timestamps bool   `toml:"timestamps" env:"FT_LOG_TIMESTAMPS"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"FT_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"FT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".futurtask")

	return &Config{
		Storage: StorageConfig{
			Dir:            defaultDBDir,
			Filename:       "futurtask.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Profiles: ProfilesConfig{
			DefaultName:  "Main",
			DefaultIcon:  "👤",
			DefaultColor: "#00ff88",
		},
		Stats: StatsConfig{
			ChartTagLimit: 5,
			TagListLimit:  10,
			RecentLimit:   5,
		},
		Reminders: RemindersConfig{
			Interval: 5 * time.Minute,
		},
		Cache: CacheConfig{
			Prefix:       "futurTask",
			Version:      "1.0.0",
			Origin:       "http://localhost:8080",
			Listen:       "127.0.0.1:8081",
			FetchTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("FT_DB_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("FT_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if timeout := os.Getenv("FT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if timeout := os.Getenv("FT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}
	if perms := os.Getenv("FT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Profile defaults
	if name := os.Getenv("FT_PROFILE_DEFAULT_NAME"); name != "" {
		c.Profiles.DefaultName = name
	}
	if icon := os.Getenv("FT_PROFILE_DEFAULT_ICON"); icon != "" {
		c.Profiles.DefaultIcon = icon
	}
	if color := os.Getenv("FT_PROFILE_DEFAULT_COLOR"); color != "" {
		c.Profiles.DefaultColor = color
	}

	// Stats configuration
	if n := os.Getenv("FT_STATS_CHART_TAGS"); n != "" {
		c.Stats.ChartTagLimit = ParseIntWithFallback(n, c.Stats.ChartTagLimit)
	}
	if n := os.Getenv("FT_STATS_TAG_LIST"); n != "" {
		c.Stats.TagListLimit = ParseIntWithFallback(n, c.Stats.TagListLimit)
	}
	if n := os.Getenv("FT_STATS_RECENT"); n != "" {
		c.Stats.RecentLimit = ParseIntWithFallback(n, c.Stats.RecentLimit)
	}

	// Reminders configuration
	if interval := os.Getenv("FT_REMIND_INTERVAL"); interval != "" {
		c.Reminders.Interval = ParseDurationWithFallback(interval, c.Reminders.Interval)
	}

	// Cache configuration
	if prefix := os.Getenv("FT_CACHE_PREFIX"); prefix != "" {
		c.Cache.Prefix = prefix
	}
	if version := os.Getenv("FT_CACHE_VERSION"); version != "" {
		c.Cache.Version = version
	}
	if origin := os.Getenv("FT_CACHE_ORIGIN"); origin != "" {
		c.Cache.Origin = origin
	}
	if listen := os.Getenv("FT_CACHE_LISTEN"); listen != "" {
		c.Cache.Listen = listen
	}
	if timeout := os.Getenv("FT_CACHE_FETCH_TIMEOUT"); timeout != "" {
		c.Cache.FetchTimeout = ParseDurationWithFallback(timeout, c.Cache.FetchTimeout)
	}

	// Logging configuration
	if level := os.Getenv("FT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("FT_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if ts := os.Getenv("FT_LOG_TIMESTAMPS"); ts != "" {
		c.Logging.Timestamps = ParseBoolWithFallback(ts, c.Logging.Timestamps)
	}

	// Application configuration
	if timeout := os.Getenv("FT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("FT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Profiles.DefaultName == "" {
		return &ConfigError{Field: "profiles.default_name", Message: "default profile name cannot be empty"}
	}

	if c.Stats.ChartTagLimit < 1 || c.Stats.TagListLimit < 1 || c.Stats.RecentLimit < 1 {
		return &ConfigError{Field: "stats", Message: "list limits must be at least 1"}
	}

	if c.Reminders.Interval <= 0 {
		return &ConfigError{Field: "reminders.interval", Message: "reminder interval must be positive"}
	}

	if c.Cache.Prefix == "" {
		return &ConfigError{Field: "cache.prefix", Message: "cache prefix cannot be empty"}
	}
	if c.Cache.Version == "" {
		return &ConfigError{Field: "cache.version", Message: "cache version cannot be empty"}
	}
	if c.Cache.Origin == "" {
		return &ConfigError{Field: "cache.origin", Message: "cache origin cannot be empty"}
	}
	if c.Cache.FetchTimeout <= 0 {
		return &ConfigError{Field: "cache.fetch_timeout", Message: "fetch timeout must be positive"}
	}

	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be text, json or logfmt"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
