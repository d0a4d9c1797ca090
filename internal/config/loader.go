package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
)

// configDirName and configFileName locate the default configuration file
// under the user configuration directory.
const (
	configDirName  = "libdeps"
	configFileName = "config.toml"
)

// Loader handles loading and validating configurations
type Loader struct {
	readFile func(path string) ([]byte, error)
}

// NewLoader creates a new config loader reading files through safefileio.
func NewLoader() *Loader {
	return &Loader{readFile: safefileio.SafeReadFile}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/libdeps/config.toml, falling
// back to ~/.config/libdeps/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfigPath, err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads the configuration at path. An empty path selects
// DefaultConfigPath, and a missing default file yields Default(). A missing
// explicitly named file is an error.
func (l *Loader) Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return Default(), nil //nolint:nilerr // no config directory means no config file
		}
	}

	content, err := l.readFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := l.LoadConfig(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig parses TOML content, applies defaults and validates the result.
// Unknown keys are rejected.
func (l *Loader) LoadConfig(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("failed to parse config: %s", strictErr.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
