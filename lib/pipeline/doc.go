// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs LZ4BlockArray units end to end: parse the JSON
// envelope, recover the raw buffer through the decompression strategy
// chain, decode the MessagePack tree, and render the result.
//
// A [Processor] holds no per-run state, so one instance can serve
// concurrent calls. [Processor.ProcessBatch] uses that to decode the
// blocks of a multi-block input in parallel while keeping the output
// in input order.
//
// The only error a run returns is a *blockarray.InputShapeError for a
// malformed envelope (or the context error from a cancelled batch).
// Every other failure degrades the rendered artifact instead; see
// render.Status.
package pipeline
