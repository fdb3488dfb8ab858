package config

import (
	"cfb-trends-go/database"
	"cfb-trends-go/logging"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database backends
const (
	BackendMongo    = database.BackendMongo
	BackendPostgres = database.BackendPostgres
	BackendMemory   = database.BackendMemory
	BackendNone     = database.BackendNone
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Logging  LoggingConfig  `json:"logging"`
	Auth     AuthConfig     `json:"auth"`
	Source   SourceConfig   `json:"source"`
	Cache    CacheConfig    `json:"cache"`
	App      AppConfig      `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string   `json:"port"`
	Host        string   `json:"host"`
	UseTLS      bool     `json:"use_tls"`
	BehindProxy bool     `json:"behind_proxy"`
	CertFile    string   `json:"cert_file"`
	KeyFile     string   `json:"key_file"`
	Environment string   `json:"environment"`
	CORSOrigins []string `json:"cors_origins"`
	RateLimit   int      `json:"rate_limit"` // requests per minute per client IP, 0 disables
}

// DatabaseConfig selects and configures the season cache backend
type DatabaseConfig struct {
	Backend     string        `json:"backend"`
	Host        string        `json:"host"`
	Port        string        `json:"port"`
	Username    string        `json:"username"`
	Password    string        `json:"password"`
	Database    string        `json:"database"`
	PostgresURL string        `json:"postgres_url"`
	Timeout     time.Duration `json:"timeout"`
}

// RedisConfig holds the report cache connection
type RedisConfig struct {
	URL string `json:"url"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
	LogDir      string `json:"log_dir"`
	EnableFile  bool   `json:"enable_file"`
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	JWTSecret    string        `json:"jwt_secret"`
	AdminKeyHash string        `json:"admin_key_hash"` // bcrypt hash of the admin API key
	TokenTTL     time.Duration `json:"token_ttl"`
}

// SourceConfig configures the CollegeFootballData client
type SourceConfig struct {
	BaseURL           string        `json:"base_url"`
	APIKey            string        `json:"api_key"`
	RequestsPerMinute int           `json:"requests_per_minute"`
	RetryMaxElapsed   time.Duration `json:"retry_max_elapsed"`
	HTTPTimeout       time.Duration `json:"http_timeout"`
	PreferredProvider string        `json:"preferred_provider"`
	SeasonType        string        `json:"season_type"`
}

// CacheConfig holds the schedule-aware cache lifetimes
type CacheConfig struct {
	FinishedSeasonTTL time.Duration `json:"finished_season_ttl"`
	OffSeasonTTL      time.Duration `json:"off_season_ttl"`
	GameDayTTL        time.Duration `json:"game_day_ttl"`
	PostGameDayTTL    time.Duration `json:"post_game_day_ttl"`
	WeekdayTTL        time.Duration `json:"weekday_ttl"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	CurrentSeason      int           `json:"current_season"`
	IsDevelopment      bool          `json:"is_development"`
	RefresherEnabled   bool          `json:"refresher_enabled"`
	RefreshInterval    time.Duration `json:"refresh_interval"`
	RefreshConferences []string      `json:"refresh_conferences"`
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logging.Warnf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	serverPort := getEnv("SERVER_PORT", "8080")
	if isDevelopment {
		if develPort := getEnv("DEVEL_SERVER_PORT", ""); develPort != "" {
			serverPort = develPort
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:        serverPort,
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			UseTLS:      getBoolEnv("USE_TLS", false),
			BehindProxy: getBoolEnv("BEHIND_PROXY", false),
			CertFile:    getEnv("TLS_CERT_FILE", "server.crt"),
			KeyFile:     getEnv("TLS_KEY_FILE", "server.key"),
			Environment: environment,
			CORSOrigins: getListEnv("CORS_ORIGINS", []string{"*"}),
			RateLimit:   getIntEnv("RATE_LIMIT_PER_MINUTE", 120),
		},
		Database: DatabaseConfig{
			Backend:     strings.ToLower(getEnv("DB_BACKEND", BackendMongo)),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "27017"),
			Username:    getEnv("DB_USERNAME", ""),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "cfb_trends"),
			PostgresURL: getEnv("DATABASE_URL", ""),
			Timeout:     getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", "cfb-trends"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
			LogDir:      getEnv("LOG_DIR", "./logs"),
			EnableFile:  getBoolEnv("LOG_FILE", false),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
			AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),
			TokenTTL:     getDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
		Source: SourceConfig{
			BaseURL:           strings.TrimRight(getEnv("CFBD_BASE_URL", "https://api.collegefootballdata.com"), "/"),
			APIKey:            getEnv("CFBD_API_KEY", ""),
			RequestsPerMinute: getIntEnv("CFBD_REQUESTS_PER_MINUTE", 60),
			RetryMaxElapsed:   getDurationEnv("CFBD_RETRY_MAX_ELAPSED", 30*time.Second),
			HTTPTimeout:       getDurationEnv("CFBD_HTTP_TIMEOUT", 15*time.Second),
			PreferredProvider: getEnv("PREFERRED_PROVIDER", "consensus"),
			SeasonType:        getEnv("CFBD_SEASON_TYPE", "regular"),
		},
		Cache: CacheConfig{
			FinishedSeasonTTL: getDurationEnv("CACHE_FINISHED_SEASON_TTL", 30*24*time.Hour),
			OffSeasonTTL:      getDurationEnv("CACHE_OFF_SEASON_TTL", 24*time.Hour),
			GameDayTTL:        getDurationEnv("CACHE_GAME_DAY_TTL", 15*time.Minute),
			PostGameDayTTL:    getDurationEnv("CACHE_POST_GAME_DAY_TTL", time.Hour),
			WeekdayTTL:        getDurationEnv("CACHE_WEEKDAY_TTL", 6*time.Hour),
		},
		App: AppConfig{
			CurrentSeason:      getIntEnv("CURRENT_SEASON", defaultSeason(time.Now())),
			IsDevelopment:      isDevelopment,
			RefresherEnabled:   getBoolEnv("REFRESHER_ENABLED", false),
			RefreshInterval:    getDurationEnv("REFRESH_INTERVAL", 30*time.Minute),
			RefreshConferences: getListEnv("REFRESH_CONFERENCES", []string{""}),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// defaultSeason returns the season in progress: games in January belong to the previous year's season
func defaultSeason(now time.Time) int {
	if now.Month() < time.March {
		return now.Year() - 1
	}
	return now.Year()
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got: %d", c.Server.RateLimit)
	}

	if c.Server.UseTLS && !c.Server.BehindProxy {
		if c.Server.CertFile == "" || c.Server.KeyFile == "" {
			return fmt.Errorf("TLS certificate and key files are required when USE_TLS=true")
		}
		if _, err := os.Stat(c.Server.CertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file not found: %s", c.Server.CertFile)
		}
		if _, err := os.Stat(c.Server.KeyFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS key file not found: %s", c.Server.KeyFile)
		}
	}

	switch c.Database.Backend {
	case BackendMongo:
		if c.Database.Host == "" || c.Database.Port == "" || c.Database.Database == "" {
			return fmt.Errorf("database host, port and name are required for the mongo backend")
		}
	case BackendPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendMemory, BackendNone:
	default:
		return fmt.Errorf("unknown DB_BACKEND %q (want mongo, postgres, memory or none)", c.Database.Backend)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == defaultJWTSecret && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	if c.Source.BaseURL == "" {
		return fmt.Errorf("CFBD base URL is required")
	}
	if c.Source.RequestsPerMinute <= 0 {
		return fmt.Errorf("CFBD requests per minute must be positive, got: %d", c.Source.RequestsPerMinute)
	}

	if c.App.CurrentSeason < 2000 || c.App.CurrentSeason > 2100 {
		return fmt.Errorf("current season must be between 2000 and 2100, got: %d", c.App.CurrentSeason)
	}
	if c.App.RefresherEnabled && c.App.RefreshInterval < time.Minute {
		return fmt.Errorf("refresh interval must be at least one minute, got: %s", c.App.RefreshInterval)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// IsAdminConfigured returns true if admin tokens can be issued
func (c *Config) IsAdminConfigured() bool {
	return c.Auth.AdminKeyHash != ""
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (TLS: %t, Behind Proxy: %t, Environment: %s, CORS: %s, Rate limit: %d/min)",
		c.GetServerAddress(), c.Server.UseTLS, c.Server.BehindProxy, c.Server.Environment,
		strings.Join(c.Server.CORSOrigins, ","), c.Server.RateLimit)
	switch c.Database.Backend {
	case BackendMongo:
		logging.Infof("Database: mongo %s:%s/%s (Username: %s, Auth: %t)",
			c.Database.Host, c.Database.Port, c.Database.Database,
			c.Database.Username, c.Database.Password != "")
	case BackendPostgres:
		logging.Infof("Database: postgres (URL set: %t)", c.Database.PostgresURL != "")
	case BackendMemory:
		logging.Info("Database: memory (season cache lost on restart)")
	default:
		logging.Info("Database: none (season cache disabled)")
	}
	logging.Infof("Redis: Configured=%t", c.Redis.URL != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t, File=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor, c.Logging.EnableFile)
	logging.Infof("Source: %s (API key set: %t, %d req/min, provider=%s, seasonType=%s)",
		c.Source.BaseURL, c.Source.APIKey != "", c.Source.RequestsPerMinute,
		c.Source.PreferredProvider, c.Source.SeasonType)
	logging.Infof("Cache TTLs: finished=%s offseason=%s gameday=%s postgame=%s weekday=%s",
		c.Cache.FinishedSeasonTTL, c.Cache.OffSeasonTTL, c.Cache.GameDayTTL,
		c.Cache.PostGameDayTTL, c.Cache.WeekdayTTL)
	logging.Infof("App: Season=%d, Development=%t, Refresher=%t every %s, Admin=%t",
		c.App.CurrentSeason, c.App.IsDevelopment, c.App.RefresherEnabled,
		c.App.RefreshInterval, c.IsAdminConfigured())
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated value; an explicitly empty item is kept
// so "REFRESH_CONFERENCES=,SEC" means all conferences plus SEC
func getListEnv(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
