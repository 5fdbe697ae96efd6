package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/cellsim/internal/automaton"
	"github.com/san-kum/cellsim/internal/sim"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	Predator       bool          `yaml:"predator"`
	Seed           int64         `yaml:"seed"`
	Delay          time.Duration `yaml:"delay"`
	MaxGenerations int           `yaml:"max_generations"`
	ClearScreen    bool          `yaml:"clear_screen"`
}

// DefaultConfig mirrors the reference run of sim.DefaultConfig.
func DefaultConfig() *Config {
	d := sim.DefaultConfig()
	return &Config{
		Width:    d.Width,
		Height:   d.Height,
		Predator: d.Predator,
		Delay:    d.Delay,
	}
}

// Load reads a YAML file on top of the defaults, so keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a YAML file on top of a copy of base. base is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", automaton.ErrInvalidDimension, c.Width, c.Height)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", c.Delay)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("max_generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
