// Package config loads the devrig manifest.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestName is the manifest file name searched for by default.
	ManifestName = "devrig.yaml"
	// PinsName is the version pins file name, looked up next to the manifest.
	PinsName = "devrig.pins.toml"
)

// Manifest is the parsed provisioning manifest: per-provider raw sections
// keyed by provider name. Providers parse their own sections.
type Manifest struct {
	path     string
	sections map[string]interface{}
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Sections returns the raw section map.
func (m *Manifest) Sections() map[string]interface{} {
	return m.sections
}

// PinsPath returns the expected pins file location, next to the manifest.
func (m *Manifest) PinsPath() string {
	return filepath.Join(filepath.Dir(m.path), PinsName)
}

// Loader loads manifests from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the manifest at path.
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, err
	}

	sections := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, NewParseError(path, err)
	}

	return &Manifest{path: path, sections: sections}, nil
}

// DefaultPath returns the first manifest found in the search order:
// ./devrig.yaml, then $XDG_CONFIG_HOME/devrig/devrig.yaml. When neither
// exists the local name is returned so the not-found error names it.
func DefaultPath() string {
	if _, err := os.Stat(ManifestName); err == nil {
		return ManifestName
	}

	xdgPath := filepath.Join(xdg.ConfigHome, "devrig", ManifestName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ManifestName
}
