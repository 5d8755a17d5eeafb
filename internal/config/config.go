package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix = "PARKING"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// History sizes for the two deployment profiles.
const (
	basicHistoryCap    = 5000
	extendedHistoryCap = 10000
	basicRecentLimit   = 20
	extendedRecentLim  = 50
	basicPeakHours     = 3
	extendedPeakHours  = 5
)

// Config is the fully resolved application configuration.
type Config struct {
	Env      string
	Port     string
	Log      LogConfig
	DBPath   string
	Features Features
	History  HistoryConfig
	Auth     AuthConfig
	Ingest   IngestConfig
	Status   StatusConfig
}

type LogConfig struct {
	Level  string
	Format string // console | json
}

// Features toggles the optional parts of the service.
type Features struct {
	AuthRequired      bool
	ExtendedAnalytics bool
}

type HistoryConfig struct {
	Cap              int
	RecentLimit      int
	PeakHours        int
	CivilOffsetHours int
}

type AuthConfig struct {
	SigningKey        string
	TokenTTL          time.Duration
	MinPasswordLen    int
	DefaultRole       string
	MaxLoginFailures  int
	LoginLockout      time.Duration
	BootstrapUsername string
	BootstrapPassword string
}

type IngestConfig struct {
	RateLimitPerSec float64
	RateBurst       int
}

type StatusConfig struct {
	LogInterval    time.Duration
	StreamInterval time.Duration
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", EnvProduction)
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "parking.db")
	v.SetDefault("features.auth_required", true)
	v.SetDefault("features.extended_analytics", true)
	v.SetDefault("history.cap", 0)
	v.SetDefault("history.recent_limit", 0)
	v.SetDefault("history.peak_hours", 0)
	v.SetDefault("history.civil_offset_hours", 7)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.min_password_len", 6)
	v.SetDefault("auth.default_role", "admin")
	v.SetDefault("auth.max_login_failures", 5)
	v.SetDefault("auth.login_lockout", 15*time.Minute)
	v.SetDefault("auth.bootstrap_username", "")
	v.SetDefault("auth.bootstrap_password", "")
	v.SetDefault("ingest.rate_limit_per_sec", 20.0)
	v.SetDefault("ingest.rate_burst", 40)
	v.SetDefault("status.log_interval", 5*time.Minute)
	v.SetDefault("status.stream_interval", 5*time.Second)
}

// Load reads configs/config.yml (when present) from the given search paths,
// applies PARKING_* environment overrides and resolves profile defaults.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:    v.GetString("app.env"),
		Port:   v.GetString("port"),
		DBPath: v.GetString("db.path"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Features: Features{
			AuthRequired:      v.GetBool("features.auth_required"),
			ExtendedAnalytics: v.GetBool("features.extended_analytics"),
		},
		History: HistoryConfig{
			Cap:              v.GetInt("history.cap"),
			RecentLimit:      v.GetInt("history.recent_limit"),
			PeakHours:        v.GetInt("history.peak_hours"),
			CivilOffsetHours: v.GetInt("history.civil_offset_hours"),
		},
		Auth: AuthConfig{
			SigningKey:        v.GetString("auth.signing_key"),
			TokenTTL:          v.GetDuration("auth.token_ttl"),
			MinPasswordLen:    v.GetInt("auth.min_password_len"),
			DefaultRole:       v.GetString("auth.default_role"),
			MaxLoginFailures:  v.GetInt("auth.max_login_failures"),
			LoginLockout:      v.GetDuration("auth.login_lockout"),
			BootstrapUsername: v.GetString("auth.bootstrap_username"),
			BootstrapPassword: v.GetString("auth.bootstrap_password"),
		},
		Ingest: IngestConfig{
			RateLimitPerSec: v.GetFloat64("ingest.rate_limit_per_sec"),
			RateBurst:       v.GetInt("ingest.rate_burst"),
		},
		Status: StatusConfig{
			LogInterval:    v.GetDuration("status.log_interval"),
			StreamInterval: v.GetDuration("status.stream_interval"),
		},
	}
	cfg.applyProfileDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyProfileDefaults fills zero history knobs from the basic or extended profile.
func (c *Config) applyProfileDefaults() {
	ext := c.Features.ExtendedAnalytics
	if c.History.Cap <= 0 {
		c.History.Cap = pick(ext, extendedHistoryCap, basicHistoryCap)
	}
	if c.History.RecentLimit <= 0 {
		c.History.RecentLimit = pick(ext, extendedRecentLim, basicRecentLimit)
	}
	if c.History.PeakHours <= 0 {
		c.History.PeakHours = pick(ext, extendedPeakHours, basicPeakHours)
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.MinPasswordLen <= 0 {
		c.Auth.MinPasswordLen = 6
	}
	if c.Status.LogInterval <= 0 {
		c.Status.LogInterval = 5 * time.Minute
	}
	if c.Status.StreamInterval <= 0 {
		c.Status.StreamInterval = 5 * time.Second
	}
}

func (c *Config) validate() error {
	if c.Features.AuthRequired && strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errors.New("auth.signing_key is required when features.auth_required is true")
	}
	if c.History.CivilOffsetHours < -12 || c.History.CivilOffsetHours > 14 {
		return fmt.Errorf("history.civil_offset_hours out of range: %d", c.History.CivilOffsetHours)
	}
	return nil
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
