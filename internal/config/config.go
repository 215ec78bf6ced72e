package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

// Config represents ~/.coach-admin/config.yaml.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Selector SelectorConfig `yaml:"selector"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig points the console at the platform REST API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// SelectorConfig tunes the searchable selectors.
type SelectorConfig struct {
	PageSize int           `yaml:"page_size" validate:"min=1,max=100"`
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// CacheConfig controls the query cache lifetime.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" validate:"gt=0"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Environment variables that override file values.
const (
	EnvAPIURL  = "COACH_ADMIN_API_URL"
	EnvToken   = "COACH_ADMIN_TOKEN"
	EnvLogFile = "COACH_ADMIN_LOG_FILE"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file exists. It targets the
// local fixture server started by `coach-admin fixtures serve`.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:4000",
			Timeout: 10 * time.Second,
		},
		Selector: SelectorConfig{
			PageSize: 10,
			Debounce: 500 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Parse parses config.yaml bytes on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config file at path (missing file means defaults), loads
// envFile into the process environment when present, applies env overrides
// and validates the result.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	ApplyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with COACH_ADMIN_* variables.
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvToken); ok {
		cfg.API.Token = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok && v != "" {
		cfg.Log.File = v
	}
}

// Validate checks field constraints and reports every violation in one error.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
