// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"encoding/hex"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/blockarray/lib/blockarray"
	"github.com/bureau-foundation/blockarray/lib/decompress"
	"github.com/bureau-foundation/blockarray/lib/msgtree"
	"github.com/bureau-foundation/blockarray/lib/render"
)

// Options configures a [Processor].
type Options struct {
	// Limits bounds input and output sizes. The zero value means
	// blockarray.DefaultLimits.
	Limits blockarray.Limits

	// Logger receives per-strategy debug records and one record per
	// decoded block. Nil discards.
	Logger *slog.Logger

	// Parallelism is the number of blocks a batch decodes at once.
	// Values below 1 mean 1.
	Parallelism int
}

// Processor decodes extension units. Safe for concurrent use.
type Processor struct {
	limits      blockarray.Limits
	logger      *slog.Logger
	parallelism int
	chain       decompress.Chain
}

// New returns a Processor using the standard strategy chain.
func New(options Options) *Processor {
	limits := options.Limits
	if limits == (blockarray.Limits{}) {
		limits = blockarray.DefaultLimits()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parallelism := max(options.Parallelism, 1)

	return &Processor{
		limits:      limits,
		logger:      logger,
		parallelism: parallelism,
		chain: decompress.NewChain(decompress.Options{
			MaxOutputBytes: limits.MaxOutputBytes,
			ValidateRaw:    msgtree.ValidateSequence,
		}),
	}
}

// Limits returns the limits the processor enforces.
func (p *Processor) Limits() blockarray.Limits { return p.limits }

// Chain returns the strategy chain in priority order.
func (p *Processor) Chain() decompress.Chain { return p.chain }

// Run recovers and decodes one unit. When no strategy succeeds, the
// original payload is still decoded on a best-effort basis.
func (p *Processor) Run(unit *blockarray.ExtensionUnit) render.Report {
	return p.run(unit, p.logger)
}

func (p *Processor) run(unit *blockarray.ExtensionUnit, logger *slog.Logger) render.Report {
	result := p.chain.Run(decompress.Input{Header: unit.Header(), Payload: unit.Payload()})
	for _, attempt := range result.Attempts {
		if attempt.Err != nil {
			logger.Debug("decompression strategy failed",
				"strategy", attempt.Strategy,
				"error", attempt.Err,
			)
		}
	}

	report := render.Report{Unit: unit, Chain: result}
	report.Tree = msgtree.DecodeAll(report.BestRaw())

	status := report.Status()
	if status == render.StatusDecoded {
		logger.Info("block decoded",
			"strategy", result.Strategy,
			"payload", humanize.Bytes(uint64(len(unit.Payload()))),
			"raw", humanize.Bytes(uint64(len(result.Raw))),
			"values", len(report.Tree.Values),
		)
	} else {
		logger.Warn("block not fully decoded",
			"status", status.String(),
			"strategy", result.Strategy,
			"header", hex.EncodeToString(unit.Header()),
			"payload", humanize.Bytes(uint64(len(unit.Payload()))),
			"chain_error", result.Err(),
			"decode_error", report.Tree.Err,
		)
	}
	return report
}

// Process runs unit and renders the report.
func (p *Processor) Process(unit *blockarray.ExtensionUnit, format render.Format, options render.Options) render.Artifact {
	return render.Render(p.Run(unit), format, options)
}

// ProcessJSON parses a single-block JSON envelope and processes it.
// The only error is a *blockarray.InputShapeError.
func (p *Processor) ProcessJSON(data []byte, format render.Format, options render.Options) (render.Artifact, error) {
	unit, err := blockarray.ParseUnit(data, p.limits)
	if err != nil {
		return render.Artifact{}, err
	}
	p.logger.Debug("parsed extension unit",
		"type", unit.Tag(),
		"header", hex.EncodeToString(unit.Header()),
		"payload", humanize.Bytes(uint64(len(unit.Payload()))),
	)
	return p.Process(unit, format, options), nil
}
