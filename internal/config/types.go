// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages and above.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings (including data diagnostics) and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidServerConfig is returned when the server settings are out of range.
	ErrInvalidServerConfig = errors.New("invalid server config")
	// ErrInvalidWatchConfig is returned when the watch settings are out of range.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the process logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the complete application configuration.
	Config struct {
		// TermDirs are scanned recursively for *.glossary.cue files.
		TermDirs []string `json:"term_dirs" mapstructure:"term_dirs"`
		// IncludeBuiltin loads the term modules bundled into the binary.
		IncludeBuiltin bool `json:"include_builtin" mapstructure:"include_builtin"`
		// GuidesFile replaces the bundled guide registry when set.
		GuidesFile string `json:"guides_file" mapstructure:"guides_file"`
		// Log configures the process logger.
		Log LogConfig `json:"log" mapstructure:"log"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Server configures the HTTP API.
		Server ServerConfig `json:"server" mapstructure:"server"`
		// Watch configures hot reload.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`

		// SourcePath is the file the configuration was read from, empty when
		// only defaults and environment variables apply.
		SourcePath string `json:"-" mapstructure:"-"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// ColorScheme sets the palette (auto, dark, light).
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output by default.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Width wraps rendered definitions; 0 uses the terminal default.
		Width int `json:"width" mapstructure:"width"`
	}

	// ServerConfig configures the HTTP API.
	ServerConfig struct {
		// Addr is the listen address.
		Addr string `json:"addr" mapstructure:"addr"`
		// RateLimit is the sustained requests per second; 0 disables limiting.
		RateLimit float64 `json:"rate_limit" mapstructure:"rate_limit"`
		// Burst is the number of requests allowed above the sustained rate.
		Burst int `json:"burst" mapstructure:"burst"`
	}

	// WatchConfig configures hot reload.
	WatchConfig struct {
		// Debounce is the quiet period before a rebuild.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
		// Patterns are doublestar globs (relative to each term directory) that
		// trigger a rebuild.
		Patterns []string `json:"patterns" mapstructure:"patterns"`
	}
)

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid checks the server settings.
func (s ServerConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(s.Addr) == "" {
		errs = append(errs, fmt.Errorf("%w: addr must not be empty", ErrInvalidServerConfig))
	}
	if s.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: rate_limit must be >= 0, got %v", ErrInvalidServerConfig, s.RateLimit))
	}
	if s.Burst < 1 {
		errs = append(errs, fmt.Errorf("%w: burst must be >= 1, got %d", ErrInvalidServerConfig, s.Burst))
	}
	return len(errs) == 0, errs
}

// IsValid checks the watch settings.
func (w WatchConfig) IsValid() (bool, []error) {
	if w.Debounce < 0 {
		return false, []error{fmt.Errorf("%w: debounce must be >= 0, got %s", ErrInvalidWatchConfig, w.Debounce)}
	}
	return true, nil
}

// IsValid checks every field of the configuration and returns an
// InvalidConfigError listing all problems.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.Log.Level.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if c.UI.Width < 0 {
		errs = append(errs, fmt.Errorf("ui.width must be >= 0, got %d", c.UI.Width))
	}
	if ok, fieldErrs := c.Server.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Watch.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	for i, dir := range c.TermDirs {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("term_dirs[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config (%d error(s)): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so
// errors.Is matches both the sentinel and each field's sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		TermDirs:       []string{},
		IncludeBuiltin: true,
		GuidesFile:     "",
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Width:       0,
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8080",
			RateLimit: 20,
			Burst:     40,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Patterns: []string{"**/*.glossary.cue"},
		},
	}
}
