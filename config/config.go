// Package config loads the optional harness configuration file. Everything
// has a built-in default, so the harness works with no file at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the config file location when no --config
	// flag is given.
	EnvConfigPath = "DEPLOYCHECK_CONFIG"

	defaultFileName = ".deploycheck.yaml"

	defaultLocalURL = "http://localhost:8000"
	// Placeholder used by --both until the operator configures a real URL.
	defaultDeploymentURL = "https://your-project-name.vercel.app"
)

// Config holds the harness defaults an operator can override per project.
type Config struct {
	LocalURL      string `yaml:"local_url"`
	DeploymentURL string `yaml:"deployment_url"`
	HistoryPath   string `yaml:"history_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LocalURL:      defaultLocalURL,
		DeploymentURL: defaultDeploymentURL,
	}
}

// Load reads the configuration from path, from $DEPLOYCHECK_CONFIG, or from
// ./.deploycheck.yaml, in that order of preference. A missing file is only
// an error when its location was given explicitly; otherwise the defaults
// are returned. A file that exists but does not parse is always an error.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = defaultFileName
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return withDefaults(cfg), nil
}

// withDefaults fills in any field the file left empty.
func withDefaults(cfg Config) Config {
	def := Default()
	if cfg.LocalURL == "" {
		cfg.LocalURL = def.LocalURL
	}
	if cfg.DeploymentURL == "" {
		cfg.DeploymentURL = def.DeploymentURL
	}
	return cfg
}
