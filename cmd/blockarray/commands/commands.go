// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the blockarray command tree.
package commands

import (
	"fmt"

	"github.com/bureau-foundation/blockarray/cmd/blockarray/cli"
	decodecmd "github.com/bureau-foundation/blockarray/cmd/blockarray/decode"
	"github.com/bureau-foundation/blockarray/lib/version"
)

// Root builds the complete command tree bound to streams.
func Root(streams cli.Streams) *cli.Command {
	return &cli.Command{
		Name: "blockarray",
		Description: `blockarray: MessagePack LZ4BlockArray extension decoder.

Recover and decode the payload of a MessagePack extension of type 98
(LZ4BlockArray) captured as JSON, when the library that produced it is
not available.`,
		HelpOutput: streams.Err,
		Subcommands: []*cli.Command{
			decodecmd.Command(streams),
			strategiesCommand(streams),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					if len(args) > 0 {
						return cli.Validation("version takes no arguments")
					}
					_, err := fmt.Fprintf(streams.Out, "blockarray %s\n", version.Full())
					return err
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Decode a captured block",
				Command:     "blockarray decode block.json",
			},
			{
				Description: "Show the decoded value alongside a diagnostic dump",
				Command:     "blockarray decode block.json human",
			},
			{
				Description: "List the decompression strategies in the order they are tried",
				Command:     "blockarray strategies",
			},
		},
	}
}
