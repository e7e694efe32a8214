// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import "errors"

var (
	// ErrCorrupt reports input the LZ4 decoder rejected.
	ErrCorrupt = errors.New("corrupt lz4 data")

	// ErrLengthMismatch reports a block that decoded cleanly to a
	// different length than the declared uncompressed size.
	ErrLengthMismatch = errors.New("decompressed length mismatch")

	// ErrOutputLimit reports output that would exceed the configured
	// ceiling.
	ErrOutputLimit = errors.New("decompressed output exceeds limit")

	// ErrNotApplicable reports a strategy whose preconditions do not
	// hold for the input, so no decode was attempted.
	ErrNotApplicable = errors.New("strategy not applicable")

	// ErrChainExhausted reports that no strategy recovered a buffer.
	ErrChainExhausted = errors.New("all decompression strategies failed")
)
