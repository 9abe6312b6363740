package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
)

// Parse reads and parses a YAML config file.
func Parse(configPath string) (*EngineConfig, error) {
	// Resolve symlinks to handle mounted config files.
	resolved, _ := filepath.EvalSymlinks(configPath)
	if resolved == "" {
		resolved = configPath
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	logging.Debugf("Read config file %s (%d bytes)", resolved, len(data))

	cfg := &EngineConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault parses the config at path, or returns a zero config when path
// is empty. Components apply their own defaults for unset fields.
func LoadOrDefault(path string) (*EngineConfig, error) {
	if path == "" {
		return &EngineConfig{}, nil
	}
	return Parse(path)
}

// Validate checks rule-table entries for structural problems that should fail
// startup rather than be skipped at detection time.
func (c *EngineConfig) Validate() error {
	for _, tbl := range [][]RuleConfig{c.RageRules, c.DistortionRules} {
		seen := make(map[string]bool, len(tbl))
		for _, r := range tbl {
			if r.ID == "" {
				return fmt.Errorf("rule with pattern %q has no id", r.Pattern)
			}
			if seen[r.ID] {
				return fmt.Errorf("duplicate rule id %q", r.ID)
			}
			seen[r.ID] = true
			if r.Weight <= 0 || r.Weight > 1 {
				return fmt.Errorf("rule %q: weight %.3f outside (0, 1]", r.ID, r.Weight)
			}
			if r.Category == "" {
				return fmt.Errorf("rule %q has no category", r.ID)
			}
		}
	}
	return nil
}
