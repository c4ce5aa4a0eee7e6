// Package config loads histquiz configuration from defaults, an optional
// YAML file, a .env file and HISTQUIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/trivia"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "HISTQUIZ_"

// Config holds all application configuration.
type Config struct {
	API    APIConfig  `yaml:"api"`
	Quiz   QuizConfig `yaml:"quiz"`
	DBPath string     `yaml:"db_path"`
	Log    LogConfig  `yaml:"log"`
}

// APIConfig configures the question provider.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Category int           `yaml:"category"`
	Timeout  time.Duration `yaml:"timeout"`
}

// QuizConfig configures session behavior and first-run settings.
type QuizConfig struct {
	FeedbackDelay     time.Duration `yaml:"feedback_delay"`
	DefaultAmount     int           `yaml:"default_amount"`
	DefaultDifficulty string        `yaml:"default_difficulty"`
	DefaultType       string        `yaml:"default_type"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Path  string `yaml:"path"`  // empty: next to the database
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	d := settings.Defaults()
	return Config{
		API: APIConfig{
			BaseURL:  trivia.DefaultBaseURL,
			Category: trivia.CategoryHistory,
			Timeout:  15 * time.Second,
		},
		Quiz: QuizConfig{
			FeedbackDelay:     800 * time.Millisecond,
			DefaultAmount:     d.Amount,
			DefaultDifficulty: string(d.Difficulty),
			DefaultType:       string(d.Type),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// ConfigPath is an explicit YAML file; it must exist. When empty,
	// DefaultConfigPath is read if present.
	ConfigPath string

	// EnvFiles are .env files to load; missing files are skipped. When
	// empty, ".env" in the working directory is tried.
	EnvFiles []string
}

// Load builds the configuration: defaults, then the YAML file, then .env
// files, then HISTQUIZ_* environment variables. The result is validated.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	path, required := opts.ConfigPath, true
	if path == "" {
		p, err := DefaultConfigPath()
		if err == nil {
			path, required = p, false
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := LoadEnvFiles(opts.EnvFiles...); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/histquiz/config.yaml, falling
// back to ~/.config/histquiz/config.yaml.
func DefaultConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "histquiz", "config.yaml"), nil
}

// mergeFile overlays the keys present in the YAML file at path.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnvFiles loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from HISTQUIZ_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("API_BASE_URL"); ok {
		c.API.BaseURL = v
	}
	if v, ok := lookup("API_CATEGORY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("API_CATEGORY", err)
		}
		c.API.Category = n
	}
	if v, ok := lookup("API_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("API_TIMEOUT", err)
		}
		c.API.Timeout = d
	}
	if v, ok := lookup("FEEDBACK_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("FEEDBACK_DELAY", err)
		}
		c.Quiz.FeedbackDelay = d
	}
	if v, ok := lookup("DEFAULT_AMOUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("DEFAULT_AMOUNT", err)
		}
		c.Quiz.DefaultAmount = n
	}
	if v, ok := lookup("DEFAULT_DIFFICULTY"); ok {
		c.Quiz.DefaultDifficulty = v
	}
	if v, ok := lookup("DEFAULT_TYPE"); ok {
		c.Quiz.DefaultType = v
	}
	if v, ok := lookup("DB"); ok {
		c.DBPath = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_PATH"); ok {
		c.Log.Path = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func envError(key string, err error) error {
	return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Category <= 0 {
		return fmt.Errorf("api.category must be > 0, got %d", c.API.Category)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0, got %s", c.API.Timeout)
	}
	if c.Quiz.FeedbackDelay < 0 {
		return fmt.Errorf("quiz.feedback_delay must not be negative, got %s", c.Quiz.FeedbackDelay)
	}
	if _, err := c.SettingsDefaults(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	return nil
}

// SettingsDefaults returns the quiz.default_* values as settings.
func (c Config) SettingsDefaults() (settings.Settings, error) {
	d, err := trivia.ParseDifficulty(c.Quiz.DefaultDifficulty)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("quiz.default_difficulty: %w", err)
	}
	t, err := trivia.ParseQuestionType(c.Quiz.DefaultType)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("quiz.default_type: %w", err)
	}
	s := settings.Settings{
		Amount:     c.Quiz.DefaultAmount,
		Difficulty: d,
		Type:       t,
	}
	if err := s.Validate(); err != nil {
		return settings.Settings{}, fmt.Errorf("quiz.default_amount: %w", err)
	}
	return s, nil
}
