package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvRefineWorkers       = "CLASSEUR_REFINE_WORKERS"
	EnvRefineJokerFallback = "CLASSEUR_REFINE_JOKER_FALLBACK"
)

// RefineConfig holds refinement pipeline parameters.
type RefineConfig struct {
	Workers       int  `toml:"workers"`
	JokerFallback bool `toml:"joker_fallback"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RefineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. The boolean always applies; the
// worker count only applies when non-zero.
func (c *RefineConfig) Merge(overlay *RefineConfig) {
	c.JokerFallback = overlay.JokerFallback

	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}

func (c *RefineConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c *RefineConfig) loadEnv() {
	if v := os.Getenv(EnvRefineWorkers); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.Workers = workers
		}
	}
	if v := os.Getenv(EnvRefineJokerFallback); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.JokerFallback = enabled
		}
	}
}

func (c *RefineConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	return nil
}
