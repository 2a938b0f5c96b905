package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load
var ErrInvalidConfig = errors.New("invalid configuration")

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("config: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Load loads the configuration from file and the environment.
// A missing config file is only an error when configPath is set explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("likee")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("likee")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".likee"))
		}

		// Check /etc
		v.AddConfigPath("/etc/likee/")
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
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	def := DefaultClient()

	// Client defaults
	v.SetDefault("likee.user_agent", def.UserAgent)
	v.SetDefault("likee.referer", def.Referer)
	v.SetDefault("likee.device_id", "")
	v.SetDefault("likee.user_id", "")
	v.SetDefault("likee.open_timeout", def.OpenTimeout)
	v.SetDefault("likee.read_timeout", def.ReadTimeout)
	v.SetDefault("likee.write_timeout", def.WriteTimeout)
	v.SetDefault("likee.keep_alive_idle_timeout", def.KeepAliveIdleTimeout)
	v.SetDefault("likee.proxy", "")

	// Locale defaults
	v.SetDefault("defaults.country", "US")
	v.SetDefault("defaults.language", "en")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("output.format", "table")
}

// Validate checks the configuration against its declared tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		var fields FieldErrors
		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: strings.TrimPrefix(verror.Namespace(), "Config."),
				Err:   verror.Translate(translator),
			})
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, fields)
	}

	return nil
}

// FieldError is a single validation failure for one configuration key.
type FieldError struct {
	Field string
	Err   string
}

// FieldErrors collects every field that failed validation.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}
