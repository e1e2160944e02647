package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vladjdk/gym-counter/internal/domain"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone        string `mapstructure:"timezone"`
	DefaultCategory string `mapstructure:"default_category"`
	MonthsBack      int    `mapstructure:"months_back"`
	MonthsForward   int    `mapstructure:"months_forward"`
	WeekStart       string `mapstructure:"week_start"`
}

// LogConfig holds logging settings. The TUI logs to Path; other commands
// log to stderr.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Path returns the config file location: $GYMCOUNTER_CONFIG or
// ~/.config/gymcounter/config.toml.
func Path() string {
	if p := os.Getenv("GYMCOUNTER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "gymcounter", "config.toml")
}

func newViper() *viper.Viper {
	home := os.Getenv("HOME")
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "gymcounter", "gymcounter.db"))
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.default_category", string(domain.ChestTriceps))
	v.SetDefault("ui.months_back", 12)
	v.SetDefault("ui.months_forward", 12)
	v.SetDefault("ui.week_start", "sunday")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "gymcounter", "gymcounter.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetEnvPrefix("GYMCOUNTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix
// GYMCOUNTER_. path overrides the config file location; a missing file is
// not an error.
func Load(path string) (Config, error) {
	v := newViper()
	if path == "" {
		path = Path()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("config: database.path is empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.DefaultCategory(); err != nil {
		return err
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.UI.MonthsBack < 0 || c.UI.MonthsForward < 0 {
		return errors.New("config: ui.months_back and ui.months_forward must not be negative")
	}
	return nil
}

// Location resolves ui.timezone. "Local" and "" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	switch c.UI.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: ui.timezone: %w", err)
	}
	return loc, nil
}

// DefaultCategory parses ui.default_category leniently.
func (c Config) DefaultCategory() (domain.Category, error) {
	cat, err := domain.ParseCategory(c.UI.DefaultCategory)
	if err != nil {
		return "", fmt.Errorf("config: ui.default_category: %w", err)
	}
	return cat, nil
}

// WeekStart is the first column of the month grid.
func (c Config) WeekStart() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.UI.WeekStart)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("config: ui.week_start %q: want sunday or monday", c.UI.WeekStart)
}

// LogLevel parses log.level (debug, info, warn, error).
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// Save writes the provided config to path (or Path() when empty), creating
// the config directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.default_category", cfg.UI.DefaultCategory)
	v.Set("ui.months_back", cfg.UI.MonthsBack)
	v.Set("ui.months_forward", cfg.UI.MonthsForward)
	v.Set("ui.week_start", cfg.UI.WeekStart)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
