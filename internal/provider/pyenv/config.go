// Package pyenv provides the pyenv provider: the Python version manager and
// a managed CPython installation.
package pyenv

import (
	"fmt"

	"github.com/felixgeelhaar/devrig/internal/validation"
)

const (
	// Root is the pyenv installation directory.
	Root = "~/.pyenv"
	// InstallerURL is the vendor installer script.
	InstallerURL = "https://pyenv.run"
	// VersionLatest requests resolution of the newest stable CPython.
	VersionLatest = "latest"

	defaultInitFile = "~/.bashrc"
)

// Config represents the python section of the manifest.
type Config struct {
	Version    string
	InitFile   string
	BestEffort bool
}

// ParseConfig parses the python configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Version:  VersionLatest,
		InitFile: defaultInitFile,
	}

	if v, ok := raw["version"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("version must be a string")
		}
		cfg.Version = s
	}
	if err := validation.ValidateVersion(cfg.Version); err != nil {
		return nil, err
	}

	if f, ok := raw["init_file"].(string); ok && f != "" {
		cfg.InitFile = f
	}

	if be, ok := raw["best_effort"].(bool); ok {
		cfg.BestEffort = be
	}

	return cfg, nil
}
