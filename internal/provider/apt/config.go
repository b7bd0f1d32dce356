// Package apt provides the apt provider for base packages on Debian/Ubuntu.
package apt

import (
	"fmt"

	"github.com/felixgeelhaar/devrig/internal/validation"
)

// Config represents the apt section of the manifest.
type Config struct {
	Packages   []string
	BestEffort bool
}

// ParseConfig parses the apt configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{Packages: make([]string, 0)}

	if be, ok := raw["best_effort"].(bool); ok {
		cfg.BestEffort = be
	}

	if packages, ok := raw["packages"]; ok {
		list, ok := packages.([]interface{})
		if !ok {
			return nil, fmt.Errorf("packages must be a list")
		}
		for _, p := range list {
			name, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("package must be a string")
			}
			if err := validation.ValidatePackageName(name); err != nil {
				return nil, err
			}
			cfg.Packages = append(cfg.Packages, name)
		}
	}

	return cfg, nil
}
