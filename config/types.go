package config

import (
	"time"

	"github.com/s0up4200/atmo/netatmo"
)

// Config represents the complete configuration structure
type Config struct {
	Netatmo NetatmoConfig `mapstructure:"netatmo"`
	Token   TokenConfig   `mapstructure:"token"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// NetatmoConfig holds the application credentials, the account used for the
// password grant and the default device identifiers.
type NetatmoConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DeviceID     string        `mapstructure:"device_id"`
	HomeID       string        `mapstructure:"home_id"`
	RoomID       string        `mapstructure:"room_id"`
	Scopes       []string      `mapstructure:"scopes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ParsedScopes converts the configured scope names
func (c NetatmoConfig) ParsedScopes() ([]netatmo.Scope, error) {
	scopes := make([]netatmo.Scope, 0, len(c.Scopes))
	for _, name := range c.Scopes {
		scope, err := netatmo.ParseScope(name)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// Credentials returns the application credentials for the client.
func (c NetatmoConfig) Credentials() netatmo.ClientCredentials {
	return netatmo.ClientCredentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

// TokenConfig selects where the access token is kept between runs
type TokenConfig struct {
	Store string `mapstructure:"store"`
	Path  string `mapstructure:"path"`
}

// FilterConfig contains named filter presets
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
