// Package editor provides the editor provider: it installs a terminal editor
// distribution via its vendor installer script and writes a managed block into
// the editor's own config file.
package editor

import (
	"fmt"

	"github.com/felixgeelhaar/devrig/internal/validation"
)

const (
	// DefaultName is the editor distribution installed when the manifest
	// leaves it unset.
	DefaultName = "spacevim"
	// DefaultInstallerURL is the vendor installer script for the default
	// distribution.
	DefaultInstallerURL = "https://spacevim.org/install.sh"
	// DefaultHome is where the default distribution unpacks itself.
	DefaultHome = "~/.SpaceVim"
	// DefaultConfigFile is the default distribution's own config file.
	DefaultConfigFile = "~/.SpaceVim.d/init.toml"
)

// Config represents the editor section of the manifest. Everything is
// overridable so the provider can drive any script-installed distribution.
type Config struct {
	Name         string
	InstallerURL string
	Home         string
	Command      string
	UpdateArgs   []string
	ConfigFile   string
	ConfigMarker string
	ConfigBlock  string
	BestEffort   bool
}

// ParseConfig parses the editor configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Name:         DefaultName,
		InstallerURL: DefaultInstallerURL,
		Home:         DefaultHome,
		ConfigFile:   DefaultConfigFile,
	}

	if v, ok := raw["name"].(string); ok && v != "" {
		cfg.Name = v
	}
	if v, ok := raw["install_url"].(string); ok && v != "" {
		cfg.InstallerURL = v
	}
	if v, ok := raw["home"].(string); ok && v != "" {
		cfg.Home = v
	}
	if v, ok := raw["command"].(string); ok && v != "" {
		cfg.Command = v
	}
	if v, ok := raw["update_args"].([]interface{}); ok {
		for i, a := range v {
			s, ok := a.(string)
			if !ok {
				return nil, fmt.Errorf("update_args[%d] must be a string", i)
			}
			cfg.UpdateArgs = append(cfg.UpdateArgs, s)
		}
	}
	if v, ok := raw["config_file"].(string); ok && v != "" {
		cfg.ConfigFile = v
	}
	if v, ok := raw["config_marker"].(string); ok && v != "" {
		cfg.ConfigMarker = v
	}
	if v, ok := raw["config_block"].(string); ok {
		cfg.ConfigBlock = v
	}
	if be, ok := raw["best_effort"].(bool); ok {
		cfg.BestEffort = be
	}

	if err := validation.ValidateToolName(cfg.Name); err != nil {
		return nil, err
	}
	if cfg.ConfigMarker != "" {
		if err := validation.ValidateMarker(cfg.ConfigMarker); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
