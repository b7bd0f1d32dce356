// Package fonts provides the fonts provider: patched developer fonts
// installed per family via a vendor installer script.
package fonts

import (
	"fmt"

	"github.com/felixgeelhaar/devrig/internal/validation"
)

const (
	// DefaultInstallerURL is the vendor installer script. It expects the
	// font family name as its first argument.
	DefaultInstallerURL = "https://raw.githubusercontent.com/ryanoasis/nerd-fonts/master/install.sh"
)

// Config represents the fonts section of the manifest.
type Config struct {
	Fonts        []string
	InstallerURL string
	BestEffort   bool
}

// ParseConfig parses the fonts configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		InstallerURL: DefaultInstallerURL,
	}

	if v, ok := raw["install"]; ok {
		list, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("install must be a list of font names")
		}
		for i, f := range list {
			s, ok := f.(string)
			if !ok {
				return nil, fmt.Errorf("install[%d] must be a string", i)
			}
			if err := validation.ValidateFontName(s); err != nil {
				return nil, err
			}
			cfg.Fonts = append(cfg.Fonts, s)
		}
	}

	if v, ok := raw["install_url"].(string); ok && v != "" {
		cfg.InstallerURL = v
	}
	if be, ok := raw["best_effort"].(bool); ok {
		cfg.BestEffort = be
	}

	return cfg, nil
}
