package engine

import "fmt"

// Provider compiles a section of configuration into executable steps.
// Each provider handles one kind of toolchain resource (apt, pyenv, fonts...).
type Provider interface {
	// Name returns the provider's identifier (e.g., "apt", "pyenv").
	Name() string

	// Compile transforms the provider's configuration section into steps,
	// in the order they must run.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext provides configuration data to providers during compilation.
type CompileContext struct {
	config map[string]interface{}
}

// NewCompileContext creates a new CompileContext with the given configuration.
func NewCompileContext(config map[string]interface{}) CompileContext {
	return CompileContext{config: config}
}

// Config returns the full configuration.
func (c CompileContext) Config() map[string]interface{} {
	return c.config
}

// GetSection returns a specific section of the configuration by key.
// Returns nil if the section doesn't exist or isn't a map.
func (c CompileContext) GetSection(key string) map[string]interface{} {
	if c.config == nil {
		return nil
	}
	section, ok := c.config[key]
	if !ok {
		return nil
	}
	sectionMap, ok := section.(map[string]interface{})
	if !ok {
		return nil
	}
	return sectionMap
}

// Registry assembles the run sequence from registered providers.
// Providers are consulted in registration order, which fixes step order.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make([]Provider, 0)}
}

// Register adds a provider. Registration order determines execution order.
func (r *Registry) Register(provider Provider) {
	r.providers = append(r.providers, provider)
}

// Providers returns all registered providers.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Compile builds the full step sequence from configuration.
func (r *Registry) Compile(ctx CompileContext) (*Sequence, error) {
	seq := NewSequence()

	for _, provider := range r.providers {
		steps, err := provider.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", provider.Name(), err)
		}

		for _, step := range steps {
			if err := seq.Add(step); err != nil {
				return nil, fmt.Errorf("provider %q, step %q: %w",
					provider.Name(), step.ID().String(), err)
			}
		}
	}

	return seq, nil
}
