package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	OddsAPI  OddsAPIConfig          `mapstructure:"odds_api"`
	Sports   map[string]SportConfig `mapstructure:"sports"`
	Board    BoardConfig            `mapstructure:"board"`
	Parlay   ParlayConfig           `mapstructure:"parlay"`
	Storage  StorageConfig          `mapstructure:"storage"`
	Server   ServerConfig           `mapstructure:"server"`
	Telegram TelegramConfig         `mapstructure:"telegram"`
	Logging  LoggingConfig          `mapstructure:"logging"`
}

// OddsAPIConfig holds odds provider configuration
type OddsAPIConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Regions             string        `mapstructure:"regions"`
	Markets             []string      `mapstructure:"markets"`
	OddsFormat          string        `mapstructure:"odds_format"`
	DateFormat          string        `mapstructure:"date_format"`
	Timeout             time.Duration `mapstructure:"timeout"`
	Bookmakers          []string      `mapstructure:"bookmakers"` // priority order
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`
}

// SportConfig overrides per-sport defaults
type SportConfig struct {
	LookaheadDays int `mapstructure:"lookahead_days"`
}

// BoardConfig holds game list timing configuration
type BoardConfig struct {
	HideGrace        time.Duration `mapstructure:"hide_grace"`
	HideInterval     time.Duration `mapstructure:"hide_interval"`
	PrefetchInterval time.Duration `mapstructure:"prefetch_interval"` // 0 = disabled
	Timezone         string        `mapstructure:"timezone"`
	Watch            []string      `mapstructure:"watch"` // sports logged on every hide tick
}

// ParlayConfig holds slip limits
type ParlayConfig struct {
	MaxLegs      int     `mapstructure:"max_legs"`
	MaxStake     float64 `mapstructure:"max_stake"`
	DefaultStake float64 `mapstructure:"default_stake"`
}

// StorageConfig holds durable cache configuration
type StorageConfig struct {
	Backend string      `mapstructure:"backend"` // sqlite or redis
	DBPath  string      `mapstructure:"db_path"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	KeyTTL   time.Duration `mapstructure:"key_ttl"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// SlipIdleTTL drops slips untouched for this long; SlipSweepInterval is how
	// often that check runs. MaxSlips caps the in-memory slip store.
	SlipIdleTTL       time.Duration `mapstructure:"slip_idle_ttl"`
	SlipSweepInterval time.Duration `mapstructure:"slip_sweep_interval"`
	MaxSlips          int           `mapstructure:"max_slips"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken        string        `mapstructure:"bot_token"`
	ChatID          string        `mapstructure:"chat_id"`
	Enabled         bool          `mapstructure:"enabled"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryDelayBase  time.Duration `mapstructure:"retry_delay_base"`
	AnnounceParlays bool          `mapstructure:"announce_parlays"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// Nested keys map to GAMELINE_SECTION_FIELD, e.g. GAMELINE_ODDS_API_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("GAMELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Odds API defaults
	v.SetDefault("odds_api.base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("odds_api.api_key", "")
	v.SetDefault("odds_api.regions", "us")
	v.SetDefault("odds_api.markets", []string{"h2h", "totals"})
	v.SetDefault("odds_api.odds_format", "american")
	v.SetDefault("odds_api.date_format", "iso")
	v.SetDefault("odds_api.timeout", "15s")
	v.SetDefault("odds_api.bookmakers", []string{"draftkings", "fanduel", "betmgm", "caesars", "pointsbetus", "barstool"})
	v.SetDefault("odds_api.max_idle_conns", 10)
	v.SetDefault("odds_api.max_idle_conns_per_host", 2)
	v.SetDefault("odds_api.idle_conn_timeout", "90s")

	// Sport defaults
	v.SetDefault("sports.mlb.lookahead_days", 5)
	v.SetDefault("sports.nfl.lookahead_days", 9)
	v.SetDefault("sports.cfb.lookahead_days", 9)

	// Board defaults
	v.SetDefault("board.hide_grace", "10m")
	v.SetDefault("board.hide_interval", "60s")
	v.SetDefault("board.prefetch_interval", "0s")
	v.SetDefault("board.timezone", "America/New_York")

	// Parlay defaults
	v.SetDefault("parlay.max_legs", 10)
	v.SetDefault("parlay.max_stake", 50.0)
	v.SetDefault("parlay.default_stake", 10.0)

	// Storage defaults
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.db_path", "./data/gameline.db")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key_ttl", "48h")

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.slip_idle_ttl", "2h")
	v.SetDefault("server.slip_sweep_interval", "5m")
	v.SetDefault("server.max_slips", 10000)

	// Telegram defaults
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")
	v.SetDefault("telegram.announce_parlays", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Odds API config
	if c.OddsAPI.BaseURL == "" {
		return fmt.Errorf("odds_api.base_url is required")
	}
	if c.OddsAPI.APIKey == "" {
		return fmt.Errorf("odds_api.api_key is required (or set GAMELINE_ODDS_API_API_KEY)")
	}
	if c.OddsAPI.Timeout < time.Second {
		return fmt.Errorf("odds_api.timeout must be at least 1 second")
	}
	if len(c.OddsAPI.Markets) == 0 {
		return fmt.Errorf("odds_api.markets must contain at least one market")
	}
	if len(c.OddsAPI.Bookmakers) == 0 {
		return fmt.Errorf("odds_api.bookmakers must contain at least one bookmaker")
	}

	// Validate Sports config
	for key, s := range c.Sports {
		if s.LookaheadDays < 1 {
			return fmt.Errorf("sports.%s.lookahead_days must be at least 1", key)
		}
	}

	// Validate Board config
	if c.Board.HideGrace < 0 {
		return fmt.Errorf("board.hide_grace must not be negative")
	}
	if c.Board.HideInterval < time.Second {
		return fmt.Errorf("board.hide_interval must be at least 1 second")
	}
	if c.Board.PrefetchInterval != 0 && c.Board.PrefetchInterval < time.Minute {
		return fmt.Errorf("board.prefetch_interval must be 0 or at least 1 minute")
	}
	if _, err := time.LoadLocation(c.Board.Timezone); err != nil {
		return fmt.Errorf("board.timezone is invalid: %w", err)
	}

	// Validate Parlay config
	if c.Parlay.MaxLegs < 2 {
		return fmt.Errorf("parlay.max_legs must be at least 2")
	}
	if c.Parlay.MaxStake <= 0 {
		return fmt.Errorf("parlay.max_stake must be positive")
	}
	if c.Parlay.DefaultStake < 0 || c.Parlay.DefaultStake > c.Parlay.MaxStake {
		return fmt.Errorf("parlay.default_stake must be between 0 and parlay.max_stake")
	}

	// Validate Storage config
	switch c.Storage.Backend {
	case "sqlite":
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required when storage.backend is redis")
		}
	default:
		return fmt.Errorf("storage.backend must be one of: sqlite, redis")
	}

	// Validate Server config
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.SlipIdleTTL < time.Minute {
		return fmt.Errorf("server.slip_idle_ttl must be at least 1m")
	}
	if c.Server.SlipSweepInterval < time.Second {
		return fmt.Errorf("server.slip_sweep_interval must be at least 1s")
	}
	if c.Server.MaxSlips <= 0 {
		return fmt.Errorf("server.max_slips must be positive")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Location returns the board time zone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Board.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LookaheadDays returns the configured window for a sport, or def when unset.
func (c *Config) LookaheadDays(sportKey string, def int) int {
	if s, ok := c.Sports[sportKey]; ok && s.LookaheadDays > 0 {
		return s.LookaheadDays
	}
	return def
}
