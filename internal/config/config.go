// Package config loads batch job files for the resample-wav command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	resampler "github.com/tphakala/go-pcm-resampler"
)

// ErrInvalidJob indicates a job file that cannot be run.
var ErrInvalidJob = errors.New("invalid job configuration")

// Config holds the settings shared by every job in a file.
type Config struct {
	Output struct {
		Rate int  `yaml:"rate"`
		Mono bool `yaml:"mono"`
	} `yaml:"output"`

	Processing struct {
		Parallel bool `yaml:"parallel"`
		Verbose  bool `yaml:"verbose"`
	} `yaml:"processing"`

	Jobs []Job `yaml:"jobs"`
}

// Job names one input file and where its resampled copy goes.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Load reads and parses a job file. Missing settings take the values
// from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a job file held in memory.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration converting to the fingerprint rate
// with parallel channel processing and no jobs.
func Default() *Config {
	cfg := &Config{}
	cfg.Output.Rate = resampler.RateFingerprint
	cfg.Processing.Parallel = true
	return cfg
}

// Validate checks the output rate and that every job names both files.
func (c *Config) Validate() error {
	if c.Output.Rate <= 0 {
		return fmt.Errorf("%w: output rate must be positive (got %d)", ErrInvalidJob, c.Output.Rate)
	}

	for i, job := range c.Jobs {
		if job.Input == "" || job.Output == "" {
			return fmt.Errorf("%w: job %d needs both input and output", ErrInvalidJob, i)
		}
		if job.Input == job.Output {
			return fmt.Errorf("%w: job %d would overwrite its input %s", ErrInvalidJob, i, job.Input)
		}
	}

	return nil
}
