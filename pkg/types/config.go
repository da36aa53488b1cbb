package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default configuration values.
const (
	DefaultPageSize  = 10
	DefaultLogLevel  = "INFO"
	DefaultLogFormat = LogFormatText
)

// Config holds the settings a backoffice session starts from.
type Config struct {
	PageSize       int    `mapstructure:"page_size" yaml:"page_size" validate:"min=1,max=500"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level" validate:"required,oneof=DEBUG INFO WARN ERROR"`
	LogFormat      string `mapstructure:"log_format" yaml:"log_format" validate:"required,oneof=text json"`
	ConfirmDeletes bool   `mapstructure:"confirm_deletes" yaml:"confirm_deletes"`
	SeedDir        string `mapstructure:"seed_dir" yaml:"seed_dir,omitempty" validate:"omitempty,dir"`
	ExportDir      string `mapstructure:"export_dir" yaml:"export_dir,omitempty"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		PageSize:       DefaultPageSize,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		ConfirmDeletes: true,
	}
}

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the Config is well-formed. Failures wrap
// ErrInvalidConfig and name the offending keys.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q (got %v)", ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}
