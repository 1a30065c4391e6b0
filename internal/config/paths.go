// Package config manages human-utils settings and their location on disk.
//
// Settings live in a single YAML file. Its location can be customized via
// environment variables; the default is ~/.config/human-utils/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfig overrides the settings file location.
	EnvConfig = "HUMAN_UTILS_CONFIG"

	appDir     = "human-utils"
	configFile = "config.yaml"
)

// Paths contains the filesystem paths used by human-utils.
type Paths struct {
	// Dir is the directory holding the settings file
	Dir string

	// Config is the path to the settings file
	Config string
}

// DefaultPaths returns the default paths for human-utils.
// Paths can be overridden with environment variables:
// - HUMAN_UTILS_CONFIG: Path to the settings file (highest priority)
// - XDG_CONFIG_HOME: Base directory for the human-utils config directory
func DefaultPaths() (*Paths, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return &Paths{
			Dir:    filepath.Dir(path),
			Config: path,
		}, nil
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}

	dir := filepath.Join(base, appDir)
	return &Paths{
		Dir:    dir,
		Config: filepath.Join(dir, configFile),
	}, nil
}
