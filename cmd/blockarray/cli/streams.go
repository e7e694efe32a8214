// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"
	"os"
)

// Streams carries the process context and standard streams into
// commands, so tests can drive a command with in-memory buffers.
type Streams struct {
	Context context.Context
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
}

// StandardStreams returns the process streams bound to ctx.
func StandardStreams(ctx context.Context) Streams {
	return Streams{Context: ctx, In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}
