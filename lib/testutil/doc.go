// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared fixture builders for blockarray
// tests.
//
// Fixtures are produced at test time rather than checked in as binary
// golden files: [MessagePack] encodes a Go value with the shared codec
// configuration, [CompressBlock] and [CompressFrame] apply LZ4 block
// and frame compression, [SizeHeader] builds the header bytes the
// originating encoder writes (a 0xcc marker followed by the size), and
// [EnvelopeJSON] wraps header and payload in the Node Buffer JSON shape
// the tool consumes.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since fixture construction failures are not recoverable.
//
// This package depends only on lib/codec.
package testutil
