// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/blockarray/lib/blockarray"
	"github.com/bureau-foundation/blockarray/lib/msgtree"
	"github.com/bureau-foundation/blockarray/lib/render"
)

// ProcessBatch parses a JSON array of (header, payload) pairs and
// processes every block. Output for json and human is an object
// {"total_blocks": n, "blocks": [...]}; hex prints one line per block;
// binary concatenates the blocks. The artifact status is the worst
// block status.
func (p *Processor) ProcessBatch(ctx context.Context, data []byte, format render.Format, options render.Options) (render.Artifact, error) {
	units, err := blockarray.ParseUnits(data, p.limits)
	if err != nil {
		return render.Artifact{}, err
	}
	p.logger.Debug("parsed multi-block input", "blocks", len(units))

	reports, err := p.RunAll(ctx, units)
	if err != nil {
		return render.Artifact{}, err
	}
	return renderBatch(reports, format, options), nil
}

// RunAll runs every unit, at most Parallelism at a time. Reports are
// returned in input order. Cancelling ctx stops blocks that have not
// started yet and returns the context error.
func (p *Processor) RunAll(ctx context.Context, units []*blockarray.ExtensionUnit) ([]render.Report, error) {
	reports := make([]render.Report, len(units))

	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(p.parallelism)
	for index, unit := range units {
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			reports[index] = p.run(unit, p.logger.With("block", index+1))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func renderBatch(reports []render.Report, format render.Format, options render.Options) render.Artifact {
	artifact := render.Artifact{Format: format, Status: render.StatusDecoded}
	for _, report := range reports {
		artifact.Status = render.Worst(artifact.Status, report.Status())
	}

	switch format {
	case render.FormatHex, render.FormatBinary:
		parts := make([][]byte, len(reports))
		for index, report := range reports {
			parts[index] = render.Render(report, format, options).Data
		}
		separator := []byte{'\n'}
		if format == render.FormatBinary {
			separator = nil
		}
		artifact.Data = bytes.Join(parts, separator)

	default:
		blocks := make([]any, len(reports))
		for index, report := range reports {
			if format == render.FormatHuman {
				blocks[index] = render.HumanObject(report)
			} else {
				blocks[index] = render.JSONObject(report)
			}
		}
		if format != render.FormatHuman {
			artifact.Format = render.FormatJSON
		}
		artifact.Data = render.EncodeJSON(msgtree.Object{
			{Key: "total_blocks", Value: len(reports)},
			{Key: "blocks", Value: blocks},
		}, options.Compact)
	}
	return artifact
}
