// Package config loads coral-terminal settings from defaults, an optional
// config file, CORALWATCH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CORALWATCH_API_BASE_URL
const EnvPrefix = "CORALWATCH"

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Log     LogConfig
	Journal JournalConfig
	UI      UIConfig
}

// APIConfig holds remote API settings
type APIConfig struct {
	BaseURL       string
	Timeout       time.Duration // list, timeline and create requests
	UploadTimeout time.Duration // image uploads
}

// LogConfig holds logging settings. The terminal owns stdout, so logs go to a file.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	File   string // empty disables logging
}

// JournalConfig holds settings for the local upload journal
type JournalConfig struct {
	Path   string
	Recent int // number of uploads listed on the home page
}

// UIConfig holds terminal client settings
type UIConfig struct {
	StartRoute string
}

// NewViper returns a viper instance with defaults and environment binding.
// Callers bind their flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.upload_timeout", 2*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "data/coral-terminal.log")
	v.SetDefault("journal.path", "data/coral-terminal.db")
	v.SetDefault("journal.recent", 10)
	v.SetDefault("ui.start_route", "/")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile (optional; YAML, TOML or JSON) into v and builds the Config.
// With an empty configFile, coral-terminal.yaml is looked up in the working
// directory and its absence is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("coral-terminal")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:       strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout:       v.GetDuration("api.timeout"),
			UploadTimeout: v.GetDuration("api.upload_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Journal: JournalConfig{
			Path:   v.GetString("journal.path"),
			Recent: v.GetInt("journal.recent"),
		},
		UI: UIConfig{
			StartRoute: v.GetString("ui.start_route"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base URL %q: must be absolute, e.g. http://localhost:5000/api", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api base URL %q: scheme must be http or https", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.UploadTimeout <= 0 {
		return fmt.Errorf("api upload timeout must be positive, got %s", c.API.UploadTimeout)
	}
	if c.Journal.Recent < 0 {
		return fmt.Errorf("journal recent count must not be negative, got %d", c.Journal.Recent)
	}
	if !strings.HasPrefix(c.UI.StartRoute, "/") {
		return fmt.Errorf("start route %q must begin with /", c.UI.StartRoute)
	}
	return nil
}
