package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DifficultyConfig describes one difficulty tier: board size and score multiplier.
type DifficultyConfig struct {
	ID         string  `mapstructure:"id" json:"id" validate:"required"`
	Label      string  `mapstructure:"label" json:"label" validate:"required"`
	Rows       int     `mapstructure:"rows" json:"rows" validate:"gt=0"`
	Cols       int     `mapstructure:"cols" json:"cols" validate:"gt=0"`
	Multiplier float64 `mapstructure:"multiplier" json:"multiplier" validate:"gt=0"`
}

// Config holds all configurable game parameters.
type Config struct {
	DefaultTheme      string `mapstructure:"default_theme" validate:"required"`
	DefaultDifficulty string `mapstructure:"default_difficulty" validate:"required"`
	// RevealDurationMS is how long a mismatched pair stays face-up before it is hidden again.
	RevealDurationMS int    `mapstructure:"reveal_duration_ms" validate:"gte=0"`
	MaxNameLength    int    `mapstructure:"max_name_length" validate:"gt=0"`
	WSPort           int    `mapstructure:"ws_port" validate:"gt=0,lt=65536"`
	LogLevel         string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// Seed makes boards reproducible when non-zero.
	Seed int64 `mapstructure:"seed"`

	// DatabaseURL selects the Postgres score store; when empty scores go to ScoresFile.
	DatabaseURL string `mapstructure:"database_url"`
	ScoresFile  string `mapstructure:"scores_file" validate:"required"`

	// AuthBaseURL enables bearer-token identification of players; optional.
	AuthBaseURL string `mapstructure:"auth_base_url"`

	Difficulties []DifficultyConfig `mapstructure:"difficulties" validate:"required,min=1,dive"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = []struct {
	key    string
	envVar string
}{
	{"default_theme", "DEFAULT_THEME"},
	{"default_difficulty", "DEFAULT_DIFFICULTY"},
	{"reveal_duration_ms", "REVEAL_DURATION_MS"},
	{"max_name_length", "MAX_NAME_LENGTH"},
	{"ws_port", "WS_PORT"},
	{"log_level", "LOG_LEVEL"},
	{"seed", "SEED"},
	{"database_url", "DATABASE_URL"},
	{"scores_file", "SCORES_FILE"},
	{"auth_base_url", "AUTH_BASE_URL"},
}

var validate = validator.New()

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		DefaultTheme:      "animals",
		DefaultDifficulty: "easy",
		RevealDurationMS:  1500,
		MaxNameLength:     24,
		WSPort:            8080,
		LogLevel:          "info",
		ScoresFile:        "scores.json",
		Difficulties: []DifficultyConfig{
			{ID: "easy", Label: "Easy", Rows: 4, Cols: 4, Multiplier: 1.0},
			{ID: "medium", Label: "Medium", Rows: 6, Cols: 4, Multiplier: 1.5},
			{ID: "hard", Label: "Hard", Rows: 6, Cols: 6, Multiplier: 2.0},
		},
	}
}

// Load reads configuration from an optional config.json file (or the file named
// by CONFIG_FILE), then applies environment variable overrides. Fields not set
// in either source retain their default values. Invalid override values are
// logged and ignored; the resulting config must pass Validate.
func Load() (*Config, error) {
	cfg := Defaults()

	v := viper.New()
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.envVar); err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.envVar, err)
		}
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.json"
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("failed to parse config file", "tag", "config", "path", path, "err", err)
		}
	}

	// A configured list replaces the default tiers instead of merging into them
	if v.IsSet("difficulties") {
		cfg.Difficulties = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		slog.Warn("ignoring invalid config values", "tag", "config", "err", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that every difficulty deals whole pairs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Difficulties))
	for _, d := range c.Difficulties {
		if (d.Rows*d.Cols)%2 != 0 {
			return fmt.Errorf("invalid config: difficulty %q has an odd number of cards (%dx%d)", d.ID, d.Rows, d.Cols)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("invalid config: duplicate difficulty %q", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	if _, ok := c.Difficulty(c.DefaultDifficulty); !ok {
		return fmt.Errorf("invalid config: default difficulty %q is not defined", c.DefaultDifficulty)
	}
	return nil
}

// Pairs returns how many card pairs a board of this tier holds.
func (d DifficultyConfig) Pairs() int { return d.Rows * d.Cols / 2 }

// Difficulty returns the tier with the given ID (case-insensitive).
func (c *Config) Difficulty(id string) (DifficultyConfig, bool) {
	for _, d := range c.Difficulties {
		if strings.EqualFold(d.ID, id) {
			return d, true
		}
	}
	return DifficultyConfig{}, false
}

// SlogLevel converts LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
