// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "BLOCKARRAY_CONFIG"

// Config is the master configuration for blockarray.
type Config struct {
	// Limits bounds input and output sizes before any decompression
	// work starts.
	Limits LimitsConfig `yaml:"limits"`

	// Output configures rendering defaults for the decode command.
	Output OutputConfig `yaml:"output"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`

	// Batch configures multi-block processing.
	Batch BatchConfig `yaml:"batch"`
}

// LimitsConfig bounds the work a single block can cause.
type LimitsConfig struct {
	// MaxHeaderBytes is the longest accepted extension header.
	// Default: 16
	MaxHeaderBytes ByteSize `yaml:"max_header_bytes"`

	// MaxPayloadBytes is the longest accepted payload.
	// Default: 16MiB
	MaxPayloadBytes ByteSize `yaml:"max_payload_bytes"`

	// MaxOutputBytes is the largest buffer any decompression strategy
	// may produce.
	// Default: 64MiB
	MaxOutputBytes ByteSize `yaml:"max_output_bytes"`
}

// OutputConfig sets rendering defaults. Command-line flags override
// these when given explicitly.
type OutputConfig struct {
	// Format is one of json, hex, binary, human.
	// Default: json
	Format string `yaml:"format"`

	// Compact emits single-line JSON.
	// Default: false
	Compact bool `yaml:"compact"`

	// Color is one of auto, always, never. Auto colors JSON output
	// only when stdout is a terminal.
	// Default: auto
	Color string `yaml:"color"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// BatchConfig configures multi-block processing.
type BatchConfig struct {
	// Parallelism is the number of blocks decoded at once.
	// Default: 4
	Parallelism int `yaml:"parallelism"`
}

// Valid values for enumerated fields.
var (
	OutputFormats = []string{"json", "hex", "binary", "human"}
	ColorModes    = []string{"auto", "always", "never"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

// maxParallelism bounds batch.parallelism.
const maxParallelism = 256

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxHeaderBytes:  16,
			MaxPayloadBytes: 16 << 20,
			MaxOutputBytes:  64 << 20,
		},
		Output: OutputConfig{
			Format: "json",
			Color:  "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
		Batch: BatchConfig{
			Parallelism: 4,
		},
	}
}

// Load loads configuration from the file named by BLOCKARRAY_CONFIG.
// It fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a blockarray.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values the
// file omits keep their defaults. The result is validated.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks the configuration source: an explicit path first, then
// BLOCKARRAY_CONFIG, then the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// Parse decodes YAML configuration over the defaults and validates the
// result. Unknown keys are errors. Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Limits.MaxHeaderBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_header_bytes must be positive"))
	}
	if c.Limits.MaxPayloadBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_payload_bytes must be positive"))
	}
	if c.Limits.MaxOutputBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_output_bytes must be positive"))
	}

	if !slices.Contains(OutputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", OutputFormats))
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", ColorModes))
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", LogLevels))
	}

	if c.Batch.Parallelism < 1 || c.Batch.Parallelism > maxParallelism {
		errs = append(errs, fmt.Errorf("batch.parallelism must be between 1 and %d", maxParallelism))
	}

	return errors.Join(errs...)
}

// SlogLevel returns Log.Level as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ByteSize is a size in bytes. In YAML it is either an integer or a
// human-readable string such as "16MiB" or "64 MB".
type ByteSize int

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a byte size, got a %s", node.Line, nodeKind(node))
	}
	value, err := humanize.ParseBytes(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid byte size %q: %w", node.Line, node.Value, err)
	}
	if value > math.MaxInt32 {
		return fmt.Errorf("line %d: byte size %q exceeds %s", node.Line, node.Value, humanize.IBytes(math.MaxInt32))
	}
	*s = ByteSize(value)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s ByteSize) MarshalYAML() (any, error) { return int(s), nil }

// String returns the size in IEC units, e.g. "16 MiB".
func (s ByteSize) String() string { return humanize.IBytes(uint64(max(s, 0))) }

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}
