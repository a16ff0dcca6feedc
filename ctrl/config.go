package ctrl

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Config holds the geometry of a FIFO controller.
type Config struct {
	// Depth is the number of words the FIFO holds. Must be at least 2.
	// The distributed RAM controller additionally requires a power of
	// two. Default: 16.
	Depth int `json:"depth"`

	// WordBits is the word width in bits, between 1 and 64.
	// Default: 32.
	WordBits int `json:"word_bits"`

	// AlmostFullThreshold is the occupancy above which AlmostFull
	// asserts. Default: 12.
	AlmostFullThreshold int `json:"almost_full_threshold"`

	// AlmostEmptyThreshold is the occupancy below which AlmostEmpty
	// asserts. Default: 4.
	AlmostEmptyThreshold int `json:"almost_empty_threshold"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Depth:                16,
		WordBits:             32,
		AlmostFullThreshold:  12,
		AlmostEmptyThreshold: 4,
	}
}

// LoadConfig loads a Config from a JSON file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FIFO config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse FIFO config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize FIFO config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write FIFO config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Depth < 2 {
		return fmt.Errorf("depth must be >= 2, got %d", c.Depth)
	}
	if c.WordBits < 1 || c.WordBits > 64 {
		return fmt.Errorf("word_bits must be between 1 and 64, got %d", c.WordBits)
	}
	if c.AlmostEmptyThreshold < 0 {
		return fmt.Errorf("almost_empty_threshold must be >= 0, got %d",
			c.AlmostEmptyThreshold)
	}
	if c.AlmostEmptyThreshold >= c.AlmostFullThreshold {
		return fmt.Errorf(
			"almost_empty_threshold must be < almost_full_threshold, got %d >= %d",
			c.AlmostEmptyThreshold, c.AlmostFullThreshold)
	}
	if c.AlmostFullThreshold > c.Depth {
		return fmt.Errorf("almost_full_threshold must be <= depth, got %d > %d",
			c.AlmostFullThreshold, c.Depth)
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		Depth:                c.Depth,
		WordBits:             c.WordBits,
		AlmostFullThreshold:  c.AlmostFullThreshold,
		AlmostEmptyThreshold: c.AlmostEmptyThreshold,
	}
}

// normalizeConfig clones the given config, substituting defaults when
// nil and panicking on invalid values. Constructors use it so that a
// controller never starts from an unusable geometry.
func normalizeConfig(cfg *Config) *Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Panic(err)
	}
	return cfg.Clone()
}
