package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Hierarchical settings that are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig defines one category rule: a label and the keywords that trigger it.
type CategoryConfig struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, c := range cfg.Categories {
		if c.Label == "" {
			return nil, fmt.Errorf("%s: category %d has no label", path, i)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("%s: category %q has no keywords", path, c.Label)
		}
	}

	return &cfg, nil
}

// HasCategories reports whether the file overrides the category rule table.
func (c *YAMLConfig) HasCategories() bool {
	return c != nil && len(c.Categories) > 0
}
