// Package dak models WHO SMART Guidelines Digital Adaptation Kit
// repositories: the sushi-config.yaml that identifies a DAK and the
// page list it declares.
package dak

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SushiConfigPath is the repository-relative path of the IG build config
const SushiConfigPath = "sushi-config.yaml"

// SmartBaseDependency is the dependency key marking a repository as a
// WHO SMART Guidelines DAK.
const SmartBaseDependency = "smart.who.int.base"

// SushiConfig is the subset of the FSH/IG build configuration the
// workbench reads. Unknown keys are ignored.
type SushiConfig struct {
	ID           string               `yaml:"id"`
	Canonical    string               `yaml:"canonical"`
	Name         string               `yaml:"name"`
	Title        string               `yaml:"title"`
	Description  string               `yaml:"description"`
	Version      string               `yaml:"version"`
	Status       string               `yaml:"status"`
	Dependencies map[string]yaml.Node `yaml:"dependencies"`
	Pages        yaml.Node            `yaml:"pages"`
}

// ParseSushiConfig parses sushi-config.yaml content
func ParseSushiConfig(data []byte) (*SushiConfig, error) {
	var cfg SushiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SushiConfigPath, err)
	}
	return &cfg, nil
}

// IsDAK reports whether the configuration declares the SMART
// guidelines base dependency.
func (c *SushiConfig) IsDAK() bool {
	_, ok := c.Dependencies[SmartBaseDependency]
	return ok
}

// DependencyVersion returns the declared version of a dependency.
// Dependencies appear either as a bare version string or as a mapping
// with a version key.
func (c *SushiConfig) DependencyVersion(name string) (string, bool) {
	node, ok := c.Dependencies[name]
	if !ok {
		return "", false
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, true
	case yaml.MappingNode:
		var dep struct {
			Version string `yaml:"version"`
		}
		if err := node.Decode(&dep); err != nil {
			return "", false
		}
		return dep.Version, true
	default:
		return "", false
	}
}
