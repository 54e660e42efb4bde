package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Focus    FocusConfig    `mapstructure:"focus"`
	UI       UIConfig       `mapstructure:"ui"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Log      LogConfig      `mapstructure:"log"`
	Dev      DevConfig      `mapstructure:"dev"`
	Seeds    SeedsConfig    `mapstructure:"seeds"`
}

// DatabaseConfig holds sqlite settings. Driver is "sqlite3" (cgo) or
// "sqlite" (pure Go).
type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	Driver       string `mapstructure:"driver"`
	CacheEntries int64  `mapstructure:"cache_entries"`
}

// FocusConfig sets the length and reward of a focus session.
type FocusConfig struct {
	SessionMinutes int64 `mapstructure:"session_minutes"`
	SessionXP      int   `mapstructure:"session_xp"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat         string `mapstructure:"date_format"`
	CurrencySymbol     string `mapstructure:"currency_symbol"`
	ThousandsSeparator string `mapstructure:"thousands_separator"`
	UserName           string `mapstructure:"user_name"`
	Timezone           string `mapstructure:"timezone"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig controls zerolog output. An empty Path logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// DevConfig gates the dev shortcuts.
type DevConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SeedsConfig points at an optional defaults TOML replacing the built-in
// habits, skills and quotes.
type SeedsConfig struct {
	Path string `mapstructure:"path"`
}

// Location resolves Timezone, falling back to the local zone.
func (u UIConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(u.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", u.Timezone, err)
	}
	return loc, nil
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "kairo")
}

// Path is the config file location: $KAIRO_CONFIG or
// ~/.config/kairo/config.toml.
func Path() string {
	if p := os.Getenv("KAIRO_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "kairo", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(dataDir(), "kairo.db"))
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.cache_entries", 64)
	v.SetDefault("focus.session_minutes", 25)
	v.SetDefault("focus.session_xp", 250)
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.thousands_separator", ".")
	v.SetDefault("ui.user_name", "")
	v.SetDefault("ui.timezone", "")
	v.SetDefault("backup.dir", filepath.Join(dataDir(), "backups"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir(), "kairo.log"))
	v.SetDefault("dev.enabled", false)
	v.SetDefault("seeds.path", "")
}

// Load reads configuration from .env, file and env. Env var overrides use
// prefix KAIRO_, e.g. KAIRO_FOCUS_SESSION_MINUTES.
func Load() (Config, error) {
	// .env is optional; real env vars win over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("KAIRO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if _, err := os.Stat(Path()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to Path, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.driver", cfg.Database.Driver)
	v.Set("database.cache_entries", cfg.Database.CacheEntries)
	v.Set("focus.session_minutes", cfg.Focus.SessionMinutes)
	v.Set("focus.session_xp", cfg.Focus.SessionXP)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.thousands_separator", cfg.UI.ThousandsSeparator)
	v.Set("ui.user_name", cfg.UI.UserName)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("backup.dir", cfg.Backup.Dir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("dev.enabled", cfg.Dev.Enabled)
	v.Set("seeds.path", cfg.Seeds.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
