package segscroll

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

// LoggingConfig selects console verbosity and an optional log file.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Destination string `yaml:"destination,omitempty"`
}

// Config holds the construction parameters of a coordinator.
type Config struct {
	Policy  BouncePolicy  `yaml:"policy"`
	Axis    Axis          `yaml:"axis"`
	Epsilon float64       `yaml:"epsilon"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the values used when no file is given.
func DefaultConfig() Config {
	return Config{
		Policy:  RootOwnsOverscroll,
		Axis:    Vertical,
		Epsilon: DefaultEpsilon,
		Logging: LoggingConfig{Level: "normal"},
	}
}

// LoadConfig reads a YAML configuration from path on top of the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read configuration: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of the defaults and validates the result.
// Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if !c.Policy.valid() {
		err = multierr.Append(err, fmt.Errorf("policy: unknown value %d", c.Policy))
	}
	if c.Axis != Vertical && c.Axis != Horizontal {
		err = multierr.Append(err, fmt.Errorf("axis: unknown value %d", c.Axis))
	}
	if c.Epsilon <= 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		err = multierr.Append(err, fmt.Errorf("epsilon: must be a positive number, got %v", c.Epsilon))
	}
	switch c.Logging.Level {
	case "none", "normal", "debug":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level: must be one of none, normal, debug, got %q", c.Logging.Level))
	}
	return err
}

// Dump renders the configuration back to YAML.
func (c Config) Dump() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("unable to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewCoordinator builds a coordinator from the configuration.
func (c Config) NewCoordinator(log *zap.Logger) *Coordinator {
	return New(c.Policy, c.Axis, WithEpsilon(c.Epsilon), WithLogger(log))
}
