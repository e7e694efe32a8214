// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decode implements "blockarray decode": read a JSON-serialized
// LZ4BlockArray extension block, recover the uncompressed MessagePack,
// and print it in one of four formats.
package decode

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/blockarray/cmd/blockarray/cli"
	"github.com/bureau-foundation/blockarray/lib/blockarray"
	"github.com/bureau-foundation/blockarray/lib/config"
	"github.com/bureau-foundation/blockarray/lib/pipeline"
	"github.com/bureau-foundation/blockarray/lib/render"
)

// StrictExitCode is the exit status of decode --strict when the block
// was not fully decoded.
const StrictExitCode = 2

type params struct {
	Format   string `flag:"format,f" desc:"output format: json, hex, binary, human (default from config, else json)"`
	Compact  bool   `flag:"compact,c" desc:"emit single-line JSON"`
	Envelope bool   `flag:"envelope,e" desc:"hex/binary output is the re-serialized MessagePack envelope instead of the raw buffer"`
	Batch    bool   `flag:"batch,b" desc:"input is an array of several (header, payload) pairs"`
	Color    string `flag:"color" desc:"colorize JSON output: auto, always, never (default from config, else auto)"`
	Config   string `flag:"config" desc:"path to a blockarray.yaml config file (default $BLOCKARRAY_CONFIG)"`
	Strict   bool   `flag:"strict" desc:"exit with status 2 unless the block fully decoded"`
	Verbose  bool   `flag:"verbose,v" desc:"log every decompression attempt"`
}

// settings is the merged view of configuration and flags for one run.
type settings struct {
	format   render.Format
	options  render.Options
	batch    bool
	color    string
	strict   bool
	level    slog.Level
	limits   blockarray.Limits
	parallel int
}

// Command returns the decode command bound to streams.
func Command(streams cli.Streams) *cli.Command {
	var (
		parameters params
		flagSet    *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode an LZ4BlockArray extension block",
		Description: `Decode a MessagePack LZ4BlockArray extension block (type 98) captured as
JSON, such as the output of JSON.stringify on a [header, payload] pair
of Node.js Buffers.

The header and payload are tried against an ordered chain of
decompression strategies (see "blockarray strategies"). The first
strategy that produces a complete MessagePack sequence wins. When all
fail, the payload is decoded as far as possible and the output says so.

Input comes from the named file, or from stdin when the file is "-" or
omitted. A trailing format name (json, hex, binary, human) is accepted
as a positional argument.`,
		Usage: "blockarray decode [flags] [file|-] [format]",
		Examples: []cli.Example{
			{
				Description: "Decode a captured block as a JSON report",
				Command:     "blockarray decode block.json",
			},
			{
				Description: "Print the decoded value with debug text, from stdin",
				Command:     "cat block.json | blockarray decode - human",
			},
			{
				Description: "Extract the uncompressed MessagePack bytes",
				Command:     "blockarray decode --format binary block.json > block.msgpack",
			},
			{
				Description: "Decode every pair of a multi-block capture, failing in scripts",
				Command:     "blockarray decode --batch --strict capture.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("decode", &parameters)
			return flagSet
		},
		Run: func(args []string) error {
			return run(streams, parameters, flagSet, args)
		},
	}
}

func run(streams cli.Streams, parameters params, flagSet *pflag.FlagSet, args []string) error {
	path, positionalFormat, err := splitArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(parameters.Config)
	if err != nil {
		return cli.Validation("%w", err)
	}
	merged, err := mergeSettings(cfg, parameters, flagSet, positionalFormat)
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	level.Set(merged.level)
	logger := cli.NewCommandLogger(streams.Err, level).With("command", "decode")

	data, err := readInput(path, streams.In)
	if err != nil {
		return err
	}

	processor := pipeline.New(pipeline.Options{
		Limits:      merged.limits,
		Logger:      logger,
		Parallelism: merged.parallel,
	})

	var artifact render.Artifact
	if merged.batch {
		artifact, err = processor.ProcessBatch(streams.Context, data, merged.format, merged.options)
	} else {
		artifact, err = processor.ProcessJSON(data, merged.format, merged.options)
	}
	if err != nil {
		var shapeError *blockarray.InputShapeError
		if errors.As(err, &shapeError) {
			return cli.Validation("invalid input %s: %w", inputName(path), err)
		}
		return err
	}

	colorize := shouldColorize(merged.color, artifact.Format, streams.Out)
	if err := writeArtifact(streams.Out, artifact, colorize); err != nil {
		return cli.Internal("writing output: %w", err)
	}

	if merged.strict && !artifact.Success() {
		logger.Debug("strict mode: block not fully decoded", "status", artifact.Status.String())
		return &cli.ExitError{Code: StrictExitCode}
	}
	return nil
}

// mergeSettings layers explicitly set flags over the configuration.
func mergeSettings(cfg *config.Config, parameters params, flagSet *pflag.FlagSet, positionalFormat string) (settings, error) {
	changed := func(name string) bool { return flagSet != nil && flagSet.Changed(name) }

	formatName := cfg.Output.Format
	switch {
	case changed("format") && positionalFormat != "":
		if first, second := normalizeFormat(parameters.Format), normalizeFormat(positionalFormat); first != second {
			return settings{}, cli.Validation("conflicting formats: --format %s and positional %s", parameters.Format, positionalFormat)
		}
		formatName = parameters.Format
	case changed("format"):
		formatName = parameters.Format
	case positionalFormat != "":
		formatName = positionalFormat
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return settings{}, cli.Validation("%w", err)
	}

	merged := settings{
		format: format,
		options: render.Options{
			Compact:  cfg.Output.Compact,
			Envelope: parameters.Envelope,
		},
		batch:  parameters.Batch,
		color:  cfg.Output.Color,
		strict: parameters.Strict,
		level:  cfg.SlogLevel(),
		limits: blockarray.Limits{
			MaxHeaderBytes:  int(cfg.Limits.MaxHeaderBytes),
			MaxPayloadBytes: int(cfg.Limits.MaxPayloadBytes),
			MaxOutputBytes:  int(cfg.Limits.MaxOutputBytes),
		},
		parallel: cfg.Batch.Parallelism,
	}
	if changed("compact") {
		merged.options.Compact = parameters.Compact
	}
	if changed("color") {
		if !slices.Contains(config.ColorModes, parameters.Color) {
			return settings{}, cli.Validation("invalid --color %q (valid: %v)", parameters.Color, config.ColorModes)
		}
		merged.color = parameters.Color
	}
	if parameters.Verbose {
		merged.level = slog.LevelDebug
	}
	return merged, nil
}

func normalizeFormat(name string) string {
	format, err := render.ParseFormat(name)
	if err != nil {
		return name
	}
	return format.String()
}

