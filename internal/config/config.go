package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve on hosts without zoneinfo

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/producttracker/internal/models"
)

// Defaults used for settings missing from the config file.
const (
	DefaultDBPath            = "./data/tracker.db"
	DefaultLogLevel          = "info"
	DefaultTimezone          = "Local"
	DefaultCollationLanguage = "ru"
)

type Config struct {
	DBPath            string                 `yaml:"db_path"`
	LogLevel          string                 `yaml:"log_level"`
	Timezone          string                 `yaml:"timezone"` // IANA name or "Local"; defines calendar months
	CollationLanguage string                 `yaml:"collation_language"`
	DefaultPresets    []decimal.Decimal      `yaml:"default_presets"` // seeded on first run
	MetricsFile       string                 `yaml:"metrics_file"`    // Optional: node-exporter textfile to write on exit
	SampleProducts    []models.SampleProduct `yaml:"sample_products"`
}

// DefaultPresets returns the quantity presets offered before the user adds any.
func DefaultPresets() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(5),
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
	}
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		DBPath:            DefaultDBPath,
		LogLevel:          DefaultLogLevel,
		Timezone:          DefaultTimezone,
		CollationLanguage: DefaultCollationLanguage,
		DefaultPresets:    DefaultPresets(),
		SampleProducts:    models.DefaultSampleProducts(),
	}
}

// LoadConfig reads the YAML file at configPath. A missing file is not an
// error; defaults are used instead. Environment variables DB_PATH, LOG_LEVEL
// and TZ_NAME override the file.
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// keep defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Set defaults for keys present but empty
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.CollationLanguage == "" {
		cfg.CollationLanguage = DefaultCollationLanguage
	}

	// Resolve relative paths against the config file's directory
	dir := filepath.Dir(configPath)
	if cfg.DBPath != ":memory:" && !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(dir, cfg.DBPath)
	}
	if cfg.MetricsFile != "" && !filepath.IsAbs(cfg.MetricsFile) {
		cfg.MetricsFile = filepath.Join(dir, cfg.MetricsFile)
	}

	// Environment overrides are taken as given, relative to the working directory
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TZ_NAME"); v != "" {
		cfg.Timezone = v
	}
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	for _, p := range c.DefaultPresets {
		if !p.IsPositive() {
			return fmt.Errorf("default_presets must be positive, got %s", p)
		}
	}
	for _, s := range c.SampleProducts {
		if strings.TrimSpace(s.Name) == "" || !s.Price.IsPositive() {
			return fmt.Errorf("sample product %q needs a name and a positive price", s.Name)
		}
	}
	return nil
}

// Location returns the time zone named by Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Language returns the BCP 47 tag used to sort product names.
func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.CollationLanguage)
	if err != nil {
		return language.Und, fmt.Errorf("invalid collation_language %q: %w", c.CollationLanguage, err)
	}
	return tag, nil
}
