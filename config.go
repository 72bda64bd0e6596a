package golay

import (
	"errors"
	"fmt"
	"os"

	"github.com/op/go-logging"
	"gopkg.in/yaml.v2"

	"github.com/pd0mz/go-golay/channel"
	"github.com/pd0mz/go-golay/container"
)

var ErrInvalidConfig = errors.New("golay: invalid config")

// UncorrectablePolicy decides what happens to a block that can not be
// corrected.
type UncorrectablePolicy uint8

const (
	// Abort stops the run and returns a *BlockError.
	Abort UncorrectablePolicy = iota
	// Substitute keeps the uncorrected block and continues.
	Substitute
)

var uncorrectablePolicyName = map[UncorrectablePolicy]string{
	Abort:      "abort",
	Substitute: "substitute",
}

func (p UncorrectablePolicy) String() string { return uncorrectablePolicyName[p] }

// PaddingPolicy decides how the zero bits padding the last block are removed
// when decoded bits are packed into bytes.
type PaddingPolicy uint8

const (
	// LegacyPadding drops the final byte only when it consists of padding
	// entirely (8 or more padding bits). Partial padding stays in the last
	// byte.
	LegacyPadding PaddingPolicy = iota
	// ExactPadding strips exactly the padding bits.
	ExactPadding
)

var paddingPolicyName = map[PaddingPolicy]string{
	LegacyPadding: "legacy",
	ExactPadding:  "exact",
}

func (p PaddingPolicy) String() string { return paddingPolicyName[p] }

// Config is the YAML configuration shared by the commands.
type Config struct {
	ErrorProbability float64 `yaml:"error_probability"`
	Seed             int64   `yaml:"seed"`
	OnUncorrectable  string  `yaml:"on_uncorrectable"`
	Padding          string  `yaml:"padding"`
	Container        string  `yaml:"container"`
	LogLevel         string  `yaml:"log_level"`

	policy    UncorrectablePolicy
	padding   PaddingPolicy
	container container.Kind
}

func DefaultConfig() *Config {
	return &Config{
		ErrorProbability: 0.01,
		OnUncorrectable:  Substitute.String(),
		Padding:          LegacyPadding.String(),
		Container:        container.Raw.String(),
		LogLevel:         "INFO",
		policy:           Substitute,
		padding:          LegacyPadding,
		container:        container.Raw,
	}
}

// ParseConfig reads YAML on top of the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// Validate checks the config and resolves its named options.
func (c *Config) Validate() error {
	if !(c.ErrorProbability >= 0 && c.ErrorProbability <= 1) {
		return fmt.Errorf("%w: error_probability %v: %v", ErrInvalidConfig, c.ErrorProbability, channel.ErrInvalidProbability)
	}

	var ok bool
	if c.policy, ok = lookup(uncorrectablePolicyName, c.OnUncorrectable); !ok {
		return fmt.Errorf("%w: on_uncorrectable %q", ErrInvalidConfig, c.OnUncorrectable)
	}
	if c.padding, ok = lookup(paddingPolicyName, c.Padding); !ok {
		return fmt.Errorf("%w: padding %q", ErrInvalidConfig, c.Padding)
	}

	kind, err := container.ParseKind(c.Container)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.container = kind

	if c.LogLevel != "" {
		if _, err := logging.LogLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
		}
	}
	return nil
}

func lookup[T comparable](names map[T]string, name string) (T, bool) {
	for k, n := range names {
		if n == name {
			return k, true
		}
	}
	var zero T
	return zero, false
}

func (c *Config) Policy() UncorrectablePolicy { return c.policy }

func (c *Config) PaddingPolicy() PaddingPolicy { return c.padding }

func (c *Config) ContainerKind() container.Kind { return c.container }

// Level returns the configured log level, INFO if unset.
func (c *Config) Level() logging.Level {
	level, err := logging.LogLevel(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}
