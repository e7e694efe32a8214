// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/blockarray/cmd/blockarray/cli"
	"github.com/bureau-foundation/blockarray/cmd/blockarray/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(cli.StandardStreams(ctx), os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command tree and maps the result to an exit code.
// Commands that print their own output (decode --strict) return an
// error with an ExitCode method; no "error:" line is printed for those.
func run(streams cli.Streams, args []string) int {
	err := commands.Root(streams).Execute(args)
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	printError(streams.Err, err)
	return 1
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
