package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Likee    ClientConfig   `mapstructure:"likee" validate:"required"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ClientConfig holds the settings the transport reads for every request.
// It is treated as a read-only value once loaded.
type ClientConfig struct {
	UserAgent            string        `mapstructure:"user_agent" validate:"required"`
	Referer              string        `mapstructure:"referer" validate:"required,url"`
	DeviceID             string        `mapstructure:"device_id" validate:"omitempty,alphanum"`
	UserID               string        `mapstructure:"user_id" validate:"omitempty,numeric"`
	OpenTimeout          time.Duration `mapstructure:"open_timeout" validate:"gt=0"`
	ReadTimeout          time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout         time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	KeepAliveIdleTimeout time.Duration `mapstructure:"keep_alive_idle_timeout" validate:"gte=0"`
	Proxy                string        `mapstructure:"proxy" validate:"omitempty,url"`
}

// DefaultsConfig contains the locale used when a command does not pass one
type DefaultsConfig struct {
	Country  string `mapstructure:"country" validate:"required,len=2,uppercase"`
	Language string `mapstructure:"language" validate:"required,min=2,max=5"`
}

// FilterConfig contains named filter expressions usable with --preset
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how commands render results
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table json"`
}

const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
	DefaultReferer   = "https://likee.video/"
)

// DefaultClient returns the client settings used when nothing is configured.
func DefaultClient() ClientConfig {
	return ClientConfig{
		UserAgent:            DefaultUserAgent,
		Referer:              DefaultReferer,
		OpenTimeout:          5 * time.Second,
		ReadTimeout:          5 * time.Second,
		WriteTimeout:         5 * time.Second,
		KeepAliveIdleTimeout: 45 * time.Second,
	}
}
