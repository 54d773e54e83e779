// Package config holds the YAML configuration read by the poisson command
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProblem    = "harmonic-sin"
	DefaultLower      = 0.0
	DefaultPartitions = 10
	DefaultMethod     = "cholesky"
	DefaultEpsilon    = 1e-8
	DefaultLogLevel   = "info"
)

var (
	DefaultUpper = math.Pi
	DefaultSizes = []int{5, 10, 15, 20, 25, 30, 35, 40}
)

var (
	ErrInvalidBounds     = errors.New("upper bound must be greater than lower bound")
	ErrInvalidPartitions = errors.New("partitions must be at least 2")
	ErrNegativeEpsilon   = errors.New("negative epsilon")
)

type Config struct {
	Problem    string       `yaml:"problem"`
	Lower      float64      `yaml:"lower"`
	Upper      float64      `yaml:"upper"`
	Partitions int          `yaml:"partitions"`
	Method     string       `yaml:"method"`
	Epsilon    float64      `yaml:"epsilon"`
	Sizes      []int        `yaml:"sizes"`
	Output     OutputConfig `yaml:"output"`
	LogLevel   string       `yaml:"log_level"`
}

// OutputConfig names the files a run writes. Empty paths are skipped.
type OutputConfig struct {
	Grid  string `yaml:"grid"`
	Exact string `yaml:"exact"`
	JSON  string `yaml:"json"`
	Plot  string `yaml:"plot"`
}

func DefaultConfig() *Config {
	sizes := make([]int, len(DefaultSizes))
	copy(sizes, DefaultSizes)
	return &Config{
		Problem:    DefaultProblem,
		Lower:      DefaultLower,
		Upper:      DefaultUpper,
		Partitions: DefaultPartitions,
		Method:     DefaultMethod,
		Epsilon:    DefaultEpsilon,
		Sizes:      sizes,
		Output: OutputConfig{
			Grid:  "output.txt",
			Exact: "output2.txt",
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads path over the defaults so a file only needs the fields it changes
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %s, %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if c.Upper <= c.Lower {
		return fmt.Errorf("got lower %v and upper %v, %w", c.Lower, c.Upper, ErrInvalidBounds)
	}
	if c.Partitions < 2 {
		return fmt.Errorf("got %d partitions, %w", c.Partitions, ErrInvalidPartitions)
	}
	for _, n := range c.Sizes {
		if n < 2 {
			return fmt.Errorf("got study size %d, %w", n, ErrInvalidPartitions)
		}
	}
	if c.Epsilon < 0 {
		return ErrNegativeEpsilon
	}
	return nil
}
