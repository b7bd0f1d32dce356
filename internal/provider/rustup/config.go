// Package rustup provides the rustup provider: the Rust toolchain installer
// and a managed default toolchain.
package rustup

import (
	"fmt"

	"github.com/felixgeelhaar/devrig/internal/validation"
)

const (
	// Bin is the rustup executable path after installation.
	Bin = "~/.cargo/bin/rustup"
	// InstallerURL is the vendor installer script.
	InstallerURL = "https://sh.rustup.rs"
	// DefaultToolchain is used when the manifest doesn't name one.
	DefaultToolchain = "stable"

	defaultInitFile = "~/.bashrc"
)

// Config represents the rust section of the manifest.
type Config struct {
	Toolchain  string
	InitFile   string
	BestEffort bool
}

// ParseConfig parses the rust configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Toolchain: DefaultToolchain,
		InitFile:  defaultInitFile,
	}

	if tc, ok := raw["toolchain"]; ok {
		s, ok := tc.(string)
		if !ok {
			return nil, fmt.Errorf("toolchain must be a string")
		}
		cfg.Toolchain = s
	}
	if err := validation.ValidateVersion(cfg.Toolchain); err != nil {
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
