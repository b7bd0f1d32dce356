package version

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// pinsFile is the on-disk TOML shape of a pins file.
type pinsFile struct {
	Pins map[string]string `toml:"pins"`
}

// Pins is a Resolver that answers from a pinned tool→version table and falls
// back to another resolver for unpinned tools. Pinning makes a run
// reproducible without consulting the network.
type Pins struct {
	pins     map[string]string
	fallback Resolver
}

// NewPins creates a Pins resolver over the given table. fallback may be nil,
// in which case unpinned tools fail to resolve.
func NewPins(pins map[string]string, fallback Resolver) *Pins {
	return &Pins{pins: pins, fallback: fallback}
}

// LoadPins reads a TOML pins file:
//
//	[pins]
//	python = "3.12.1"
//
// A missing file yields an empty table, not an error.
func LoadPins(path string, fallback Resolver) (*Pins, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewPins(nil, fallback), nil
		}
		return nil, fmt.Errorf("read pins file %s: %w", path, err)
	}

	var f pinsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse pins file %s: %w", path, err)
	}

	return NewPins(f.Pins, fallback), nil
}

// ResolveLatest returns the pinned version when one exists, otherwise
// delegates to the fallback resolver.
func (p *Pins) ResolveLatest(ctx context.Context, tool string) (string, error) {
	if v, ok := p.pins[tool]; ok {
		return v, nil
	}
	if p.fallback == nil {
		return "", fmt.Errorf("%w: %s is not pinned", ErrNotResolved, tool)
	}
	return p.fallback.ResolveLatest(ctx, tool)
}

// Pinned reports whether the tool has an explicit pin.
func (p *Pins) Pinned(tool string) bool {
	_, ok := p.pins[tool]
	return ok
}

// Ensure Pins satisfies Resolver.
var _ Resolver = (*Pins)(nil)
