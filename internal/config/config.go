// Package config loads user-config.yaml and exposes its values through
// dotted-path lookups like "bank.nordea.userId". The recognized keys
// are enumerated by each bank adapter and exporter; this package treats
// the file as an opaque read-only tree.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

// DefaultPath is where the fetch command looks for credentials.
const DefaultPath = "user-config.yaml"

// Config is a read-only view over the user configuration tree.
type Config struct {
	values map[string]any
}

// Load reads a YAML config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bankerr.Configf("config file %s not found, copy the template and fill in your credentials", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &Config{values: values}, nil
}

// New builds a Config from an in-memory tree. Used by tests.
func New(values map[string]any) *Config {
	return &Config{values: values}
}

// Get returns the value at a dotted path. A missing key or a path that
// descends into a scalar is a configuration error.
func (c *Config) Get(key string) (string, error) {
	node := any(c.values)
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", bankerr.Configf("missing config value %q", key)
		}
		node, ok = m[part]
		if !ok {
			return "", bankerr.Configf("missing config value %q", key)
		}
	}
	switch v := node.(type) {
	case string:
		return v, nil
	case nil:
		return "", bankerr.Configf("missing config value %q", key)
	default:
		return fmt.Sprint(v), nil
	}
}

// GetDefault returns the value at a dotted path, or def when unset.
func (c *Config) GetDefault(key, def string) string {
	v, err := c.Get(key)
	if err != nil {
		return def
	}
	return v
}

// Has reports whether a value exists at the dotted path.
func (c *Config) Has(key string) bool {
	_, err := c.Get(key)
	return err == nil
}
