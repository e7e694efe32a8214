// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/blockarray/cmd/blockarray/cli"
	"github.com/bureau-foundation/blockarray/lib/msgtree"
	"github.com/bureau-foundation/blockarray/lib/pipeline"
	"github.com/bureau-foundation/blockarray/lib/render"
)

type strategiesParams struct {
	JSON bool `flag:"json" desc:"print the chain as a JSON array"`
}

func strategiesCommand(streams cli.Streams) *cli.Command {
	var params strategiesParams

	return &cli.Command{
		Name:    "strategies",
		Summary: "List decompression strategies in priority order",
		Description: `List the decompression strategies decode tries, in order. The first
strategy whose output is a complete MessagePack sequence wins.`,
		Usage: "blockarray strategies [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("strategies", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("strategies takes no arguments")
			}

			chain := pipeline.New(pipeline.Options{}).Chain()
			if params.JSON {
				entries := make([]msgtree.Object, len(chain))
				for index, strategy := range chain {
					entries[index] = msgtree.Object{
						{Key: "name", Value: strategy.Name},
						{Key: "description", Value: strategy.Description},
					}
				}
				_, err := fmt.Fprintf(streams.Out, "%s\n", render.EncodeJSON(entries, false))
				return err
			}

			writer := tabwriter.NewWriter(streams.Out, 2, 0, 3, ' ', 0)
			for index, strategy := range chain {
				fmt.Fprintf(writer, "%d.\t%s\t%s\n", index+1, strategy.Name, strategy.Description)
			}
			return writer.Flush()
		},
	}
}
