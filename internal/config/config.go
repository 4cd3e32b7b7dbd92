package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config file names probed in each directory, in order.
var fileNames = []string{".lintmesh.json", ".lintmesh.yml", ".lintmesh.yaml"}

type IgnoreRule struct {
	Rule   string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type Config struct {
	Linters        []string     `json:"linters,omitempty" yaml:"linters,omitempty"`
	FailOn         string       `json:"failOn,omitempty" yaml:"failOn,omitempty"`
	TimeoutSeconds int          `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
	Concurrency    int          `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Exclude        []string     `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Ignore         []IgnoreRule `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Baseline       string       `json:"baseline,omitempty" yaml:"baseline,omitempty"`
}

func Default() Config {
	return Config{
		FailOn:         "error",
		TimeoutSeconds: 30,
		Exclude:        []string{"node_modules", "dist", "build", "coverage", ".git"},
	}
}

// Load searches startDir and its ancestors for a config file and merges the
// first one found over the defaults. No file at all is not an error.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			data, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			if err := unmarshal(candidate, data, &cfg); err != nil {
				return cfg, candidate, err
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cfg, "", nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	var err error
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
