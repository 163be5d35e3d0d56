package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds serialization defaults read from a TOML or YAML file.
// Command-line flags take precedence over every field.
type Config struct {
	ContentType string            `toml:"content_type" yaml:"content_type"`
	Base        string            `toml:"base" yaml:"base"`
	Flags       string            `toml:"flags" yaml:"flags"`
	Graph       string            `toml:"graph" yaml:"graph"`
	Namespaces  map[string]string `toml:"namespaces" yaml:"namespaces"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{ContentType: "text/turtle"}
}

// LoadConfig reads path as TOML (.toml) or YAML (.yaml, .yml).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// parsePrefixes turns "prefix=iri" arguments into a map.
func parsePrefixes(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		prefix, uri, ok := strings.Cut(v, "=")
		if !ok || prefix == "" || uri == "" {
			return nil, fmt.Errorf("invalid prefix %q (want prefix=iri)", v)
		}
		out[prefix] = uri
	}
	return out, nil
}
