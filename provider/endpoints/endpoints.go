// Package endpoints builds the named completion providers described by the
// configuration.
package endpoints

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gdoct/ai-storywriter-sub001/internal/config"
	"github.com/gdoct/ai-storywriter-sub001/internal/registry"
	"github.com/gdoct/ai-storywriter-sub001/provider"
	"github.com/gdoct/ai-storywriter-sub001/provider/openai"
	"github.com/openai/openai-go/option"
)

// Entry is a configured endpoint together with its provider.
type Entry struct {
	Name string
	config.Endpoint
	Provider provider.Provider
}

type Registry struct {
	entries *registry.Registry[Entry]
}

func NewRegistry() *Registry {
	return &Registry{entries: registry.New[Entry]("endpoint")}
}

// FromConfig creates a provider for every endpoint in cfg. The token of an
// endpoint is read from its api_key_env variable on every request; endpoints
// without one are called unauthenticated. extra options apply to all
// providers.
func FromConfig(cfg *config.Config, extra ...option.RequestOption) (*Registry, error) {
	r := NewRegistry()
	for _, name := range slices.Sorted(maps.Keys(cfg.Endpoints)) {
		ep := cfg.Endpoints[name]
		if err := r.Register(name, ep, New(ep, cfg.MaxRetries, extra...)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// New creates the provider for a single endpoint.
func New(ep config.Endpoint, maxRetries int, extra ...option.RequestOption) *openai.Provider {
	token := openai.StaticToken("")
	if ep.APIKeyEnv != "" {
		token = openai.EnvToken(ep.APIKeyEnv)
	}
	options := []option.RequestOption{
		option.WithBaseURL(ep.BaseURL),
		option.WithMaxRetries(maxRetries),
		openai.WithTokenSource(token),
	}
	return openai.New(append(options, extra...)...)
}

func (r *Registry) Register(name string, ep config.Endpoint, p provider.Provider) error {
	if err := r.entries.Register(name, Entry{Name: name, Endpoint: ep, Provider: p}); err != nil {
		return fmt.Errorf("register endpoint: %w", err)
	}
	return nil
}

func (r *Registry) Lookup(name string) (Entry, error) {
	return r.entries.Lookup(name)
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (provider.Provider, error) {
	entry, err := r.entries.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Provider, nil
}

// Names lists the endpoint names in sorted order.
func (r *Registry) Names() []string {
	return r.entries.Names()
}
