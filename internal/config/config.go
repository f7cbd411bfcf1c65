package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/autobrr/pwdigest/internal/encoding"
)

// Config represents the YAML configuration file
type Config struct {
	Version  int                `yaml:"version"`
	Default  *Options           `yaml:"default"`
	Profiles map[string]Options `yaml:"profiles"`
}

// Options represents the settings for a single profile
type Options struct {
	Encoding string `yaml:"encoding"`
	Workers  int    `yaml:"workers"`
	Verbose  bool   `yaml:"verbose"`
	Quiet    bool   `yaml:"quiet"`
}

// FindConfigFile searches for a config file in known locations
func FindConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("could not open config file: %w", err)
		}
		return explicitPath, nil
	}

	locations := []string{
		"pwdigest.yaml", // current directory
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations,
			filepath.Join(home, ".config", "pwdigest", "config.yaml"), // ~/.config/pwdigest/
			filepath.Join(home, ".pwdigest", "config.yaml"),           // ~/.pwdigest/
		)
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}

	return "", fmt.Errorf("could not find config file in known locations")
}

// Load loads a config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates config data
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	if config.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d", config.Version)
	}

	if config.Default != nil {
		if err := config.Default.validate(); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	}
	for name, p := range config.Profiles {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}

	return &config, nil
}

func (o *Options) validate() error {
	if _, err := encoding.Parse(o.Encoding); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	return nil
}

// GetProfile returns a profile by name, merged with default settings.
// An empty name returns the defaults alone.
func (c *Config) GetProfile(name string) (*Options, error) {
	if name == "" {
		if c.Default == nil {
			return &Options{}, nil
		}
		merged := *c.Default
		return &merged, nil
	}

	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}

	if c.Default == nil {
		return &profile, nil
	}

	merged := *c.Default // create a copy of defaults

	if profile.Encoding != "" {
		merged.Encoding = profile.Encoding
	}
	if profile.Workers != 0 {
		merged.Workers = profile.Workers
	}

	// explicit bool overrides
	if profile.Verbose != merged.Verbose {
		merged.Verbose = profile.Verbose
	}
	if profile.Quiet != merged.Quiet {
		merged.Quiet = profile.Quiet
	}

	return &merged, nil
}

// Resolve finds and loads the config file, then returns the named profile.
// A missing config file is not an error unless a path or profile was given.
func Resolve(explicitPath, profile string) (*Options, error) {
	path, err := FindConfigFile(explicitPath)
	if err != nil {
		if explicitPath == "" && profile == "" {
			return &Options{}, nil
		}
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.GetProfile(profile)
}
