package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Log levels accepted in the settings file and HUMAN_UTILS_LOG.
var logLevels = []string{"off", "error", "warn", "info", "debug"}

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Settings are the user preferences read from the settings file.
// Command-line flags take precedence over every field.
type Settings struct {
	// Color selects colored output (default: auto)
	Color ColorMode `yaml:"color"`

	// Silent suppresses success messages by default
	Silent bool `yaml:"silent"`

	// LogLevel is the minimum level of debug logging on stderr (default: off)
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json (default: text)
	LogFormat string `yaml:"log_format"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Color:     ColorAuto,
		LogLevel:  "off",
		LogFormat: LogFormatText,
	}
}

// Load reads settings from path. A missing or empty file yields the
// defaults; unknown keys and invalid values are errors.
func Load(path string) (*Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return settings, nil
}

// Validate checks enum values, filling in defaults for empty ones.
func (s *Settings) Validate() error {
	switch s.Color {
	case "":
		s.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never; got %q", s.Color)
	}

	if s.LogLevel == "" {
		s.LogLevel = "off"
	}
	if !ValidLogLevel(s.LogLevel) {
		return fmt.Errorf("log_level must be one of off, error, warn, info, debug; got %q", s.LogLevel)
	}

	switch s.LogFormat {
	case "":
		s.LogFormat = LogFormatText
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be one of text, json; got %q", s.LogFormat)
	}
	return nil
}

// ValidLogLevel reports whether level is a known log level name.
func ValidLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Marshal renders the settings as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
