// Package nvm provides the nvm provider: the Node version manager and a
// managed Node.js installation.
package nvm

import (
	"fmt"

	"github.com/felixgeelhaar/devrig/internal/validation"
)

const (
	// Dir is the nvm installation directory.
	Dir = "~/.nvm"
	// InstallerURL is the vendor installer script.
	InstallerURL = "https://raw.githubusercontent.com/nvm-sh/nvm/v0.40.1/install.sh"
	// VersionLTS requests the current long-term-support Node.js line.
	VersionLTS = "lts"

	defaultInitFile = "~/.bashrc"
)

// Config represents the node section of the manifest.
type Config struct {
	Version    string
	InitFile   string
	BestEffort bool
}

// ParseConfig parses the node configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Version:  VersionLTS,
		InitFile: defaultInitFile,
	}

	if v, ok := raw["version"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("version must be a string")
		}
		// "lts/*" is nvm's own spelling of the LTS alias.
		if s == "lts/*" {
			s = VersionLTS
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
