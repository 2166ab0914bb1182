// Package config provides configuration loading, defaults, and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CaseAPI  CaseAPIConfig  `mapstructure:"case_api"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Host                     string   `mapstructure:"host"`
	Port                     int      `mapstructure:"port"`
	Mode                     string   `mapstructure:"mode"` // debug/release
	ReadHeaderTimeoutSeconds int      `mapstructure:"read_header_timeout"`
	IdleTimeoutSeconds       int      `mapstructure:"idle_timeout"`
	TrustedProxies           []string `mapstructure:"trusted_proxies"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutSeconds) * time.Second
}

func (s *ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

type LogConfig struct {
	Level           string            `mapstructure:"level"`
	Format          string            `mapstructure:"format"`
	ServiceName     string            `mapstructure:"service_name"`
	Environment     string            `mapstructure:"env"`
	Caller          bool              `mapstructure:"caller"`
	StacktraceLevel string            `mapstructure:"stacktrace_level"`
	Output          LogOutputConfig   `mapstructure:"output"`
	Rotation        LogRotationConfig `mapstructure:"rotation"`
}

type LogOutputConfig struct {
	ToStdout bool   `mapstructure:"to_stdout"`
	ToFile   bool   `mapstructure:"to_file"`
	FilePath string `mapstructure:"file_path"`
}

type LogRotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
	LocalTime  bool `mapstructure:"local_time"`
}

// CaseAPIConfig describes the upstream Civil Case API connection.
type CaseAPIConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	// TimeoutSeconds bounds every upstream call, token requests included.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// TokenRefreshBufferMinutes is how long before expiry a cached bearer
	// token is treated as stale and refreshed.
	TokenRefreshBufferMinutes int `mapstructure:"token_refresh_buffer_minutes"`
}

func (c *CaseAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *CaseAPIConfig) TokenRefreshBuffer() time.Duration {
	return time.Duration(c.TokenRefreshBufferMinutes) * time.Minute
}

// SessionConfig describes caseworker session cookies and their server-side
// records.
type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	// Secret signs the session cookie token (HS256).
	Secret       string `mapstructure:"secret"`
	TTLMinutes   int    `mapstructure:"ttl_minutes"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
	// KeyPrefix namespaces session keys in Redis for shared instances.
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (r *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type SecurityConfig struct {
	CSP CSPConfig `mapstructure:"csp"`
}

type CSPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Policy  string `mapstructure:"policy"`
}

// DefaultCSPPolicy suits the server-rendered pages: no scripts beyond our
// own, forms post back to us only.
const DefaultCSPPolicy = "default-src 'self'; style-src 'self'; img-src 'self' data:; frame-ancestors 'none'; base-uri 'self'; form-action 'self'"

// Load reads and validates the full configuration.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		viper.AddConfigPath(dataDir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/laa-civil-case-ui")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config error: %w", err)
		}
		// Missing config file is fine; defaults plus env cover it.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	cfg.Server.Mode = strings.ToLower(strings.TrimSpace(cfg.Server.Mode))
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	cfg.CaseAPI.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.CaseAPI.BaseURL), "/")
	cfg.CaseAPI.ClientID = strings.TrimSpace(cfg.CaseAPI.ClientID)
	cfg.CaseAPI.ClientSecret = strings.TrimSpace(cfg.CaseAPI.ClientSecret)
	cfg.Session.CookieName = strings.TrimSpace(cfg.Session.CookieName)
	cfg.Session.Secret = strings.TrimSpace(cfg.Session.Secret)
	cfg.Session.KeyPrefix = strings.TrimSpace(cfg.Session.KeyPrefix)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Log.ServiceName = strings.TrimSpace(cfg.Log.ServiceName)
	cfg.Log.Environment = strings.TrimSpace(cfg.Log.Environment)
	cfg.Security.CSP.Policy = strings.TrimSpace(cfg.Security.CSP.Policy)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_header_timeout", 10)
	viper.SetDefault("server.idle_timeout", 60)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.service_name", "laa-civil-case-ui")
	viper.SetDefault("log.env", "production")
	viper.SetDefault("log.caller", false)
	viper.SetDefault("log.stacktrace_level", "error")
	viper.SetDefault("log.output.to_stdout", true)
	viper.SetDefault("log.output.to_file", false)
	viper.SetDefault("log.rotation.max_size_mb", 100)
	viper.SetDefault("log.rotation.max_backups", 10)
	viper.SetDefault("log.rotation.max_age_days", 7)
	viper.SetDefault("log.rotation.compress", true)

	// Case API
	viper.SetDefault("case_api.base_url", "http://localhost:8010")
	viper.SetDefault("case_api.timeout_seconds", 30)
	viper.SetDefault("case_api.token_refresh_buffer_minutes", 5)

	// Session
	viper.SetDefault("session.cookie_name", "ccui_session")
	viper.SetDefault("session.ttl_minutes", 60)
	viper.SetDefault("session.cookie_secure", true)
	viper.SetDefault("session.key_prefix", "ccui:")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	// Security
	viper.SetDefault("security.csp.enabled", true)
}

// Validate rejects configurations the server cannot safely start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}

	if c.CaseAPI.BaseURL == "" {
		return fmt.Errorf("case_api.base_url is required")
	}
	parsed, err := url.Parse(c.CaseAPI.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("case_api.base_url is not a valid URL: %q", c.CaseAPI.BaseURL)
	}
	if c.CaseAPI.ClientID == "" || c.CaseAPI.ClientSecret == "" {
		return fmt.Errorf("case_api.client_id and case_api.client_secret are required")
	}
	if c.CaseAPI.TimeoutSeconds <= 0 {
		return fmt.Errorf("case_api.timeout_seconds must be positive")
	}
	if c.CaseAPI.TokenRefreshBufferMinutes < 0 {
		return fmt.Errorf("case_api.token_refresh_buffer_minutes must not be negative")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("session.ttl_minutes must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}

	return nil
}
