// Package shell provides the shell provider: managed env and PATH blocks in
// the user's shell init file.
package shell

import (
	"fmt"
)

// DefaultInitFile is used when the manifest doesn't name a shell init file.
const DefaultInitFile = "~/.bashrc"

// Config represents the shell section of the manifest.
type Config struct {
	InitFile string
	Env      map[string]string
	Path     []string
}

// ParseConfig parses the shell configuration from a raw section.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		InitFile: DefaultInitFile,
		Env:      make(map[string]string),
		Path:     make([]string, 0),
	}

	if initFile, ok := raw["init_file"].(string); ok && initFile != "" {
		cfg.InitFile = initFile
	}

	if env, ok := raw["env"]; ok {
		envMap, ok := env.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("env must be a map")
		}
		for k, v := range envMap {
			value, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("env value for %s must be a string", k)
			}
			cfg.Env[k] = value
		}
	}

	if path, ok := raw["path"]; ok {
		list, ok := path.([]interface{})
		if !ok {
			return nil, fmt.Errorf("path must be a list")
		}
		for _, p := range list {
			dir, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("path entry must be a string")
			}
			cfg.Path = append(cfg.Path, dir)
		}
	}

	return cfg, nil
}
