package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Token store kinds
const (
	StoreKeyring = "keyring"
	StoreFile    = "file"
	StoreNone    = "none"
)

// envKeys are bound explicitly so they reach Unmarshal even when absent from
// the config file. netatmo.client_id is read from NETATMO_CLIENT_ID.
var envKeys = []string{
	"netatmo.client_id",
	"netatmo.client_secret",
	"netatmo.username",
	"netatmo.password",
	"netatmo.device_id",
	"netatmo.home_id",
	"netatmo.room_id",
	"netatmo.scopes",
	"netatmo.timeout",
	"token.store",
	"token.path",
	"logging.level",
	"logging.format",
}

// Load loads the configuration from file and environment. A file is optional
// unless configPath is given.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".atmo"))
		}

		// Check /etc
		v.AddConfigPath("/etc/atmo/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Netatmo defaults
	v.SetDefault("netatmo.scopes", []string{"read_station", "read_thermostat", "write_thermostat", "read_homecoach"})
	v.SetDefault("netatmo.timeout", 30*time.Second)

	// Token defaults
	v.SetDefault("token.store", StoreFile)
	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault("token.path", filepath.Join(home, ".atmo", "token.json"))
	}

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Netatmo.ClientID == "" {
		return fmt.Errorf("netatmo.client_id is required")
	}

	if cfg.Netatmo.ClientSecret == "" || cfg.Netatmo.ClientSecret == "your-client-secret-here" {
		return fmt.Errorf("netatmo.client_secret must be set to a valid secret")
	}

	if len(cfg.Netatmo.Scopes) == 0 {
		return fmt.Errorf("netatmo.scopes must list at least one scope")
	}
	if _, err := cfg.Netatmo.ParsedScopes(); err != nil {
		return fmt.Errorf("invalid netatmo.scopes: %w", err)
	}

	if cfg.Netatmo.Timeout < 0 {
		return fmt.Errorf("netatmo.timeout cannot be negative")
	}

	switch cfg.Token.Store {
	case StoreKeyring, StoreNone:
	case StoreFile:
		if cfg.Token.Path == "" {
			return fmt.Errorf("token.path is required when token.store is %q", StoreFile)
		}
	default:
		return fmt.Errorf("invalid token.store: %s (must be 'keyring', 'file' or 'none')", cfg.Token.Store)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
