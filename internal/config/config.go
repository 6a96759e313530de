// Package config loads the storywriter configuration from a YAML file,
// .env files and STORYWRITER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override config keys:
// STORYWRITER_MAX_TOKENS sets max_tokens.
const EnvPrefix = "STORYWRITER_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A .env file next to the config file is
// loaded first; variables already set in the environment win over it.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("accessing %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint is required"))
	} else if _, ok := c.Endpoints[c.Endpoint]; !ok {
		errs = append(errs, fmt.Errorf("endpoint %q is not configured", c.Endpoint))
	}
	for name, ep := range c.Endpoints {
		if ep.BaseURL == "" {
			errs = append(errs, fmt.Errorf("endpoints.%s.base_url is required", name))
		}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v must be between 0 and 2", c.Temperature))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, errors.New("max_tokens must be non-negative"))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("max_retries must be non-negative"))
	}
	if _, err := slogx.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SelectedEndpoint returns the endpoint named by Endpoint.
func (c *Config) SelectedEndpoint() (Endpoint, error) {
	ep, ok := c.Endpoints[c.Endpoint]
	if !ok {
		return Endpoint{}, fmt.Errorf("endpoint %q is not configured", c.Endpoint)
	}
	return ep, nil
}

// ResolveModel picks the model for a request: the explicit override, then
// the configured model, then the default model of the selected endpoint.
func (c *Config) ResolveModel(override string) string {
	if override != "" {
		return override
	}
	if c.Model != "" {
		return c.Model
	}
	ep, err := c.SelectedEndpoint()
	if err != nil {
		return ""
	}
	return ep.Model
}
