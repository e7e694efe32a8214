// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decompress recovers the uncompressed MessagePack buffer from
// an LZ4BlockArray extension unit.
//
// Real-world producers disagree on where the uncompressed size lives
// and on whether the payload is compressed at all, so recovery is an
// ordered [Chain] of [Strategy] values. [NewChain] builds the fixed
// order used by the decoder:
//
//   - sized-block: a raw LZ4 block whose uncompressed size is read
//     from the extension header
//   - prefixed-block: a raw LZ4 block preceded by a little-endian size
//     prefix inside the payload
//   - raw: the payload is already uncompressed MessagePack
//   - frame: the payload is a self-describing LZ4 frame
//
// The first strategy that succeeds wins. Every attempt, successful or
// not, is recorded in the [Result].
//
// The two primitives [Block] and [Frame] wrap pierrec/lz4 with exact
// length checks and an output ceiling.
package decompress
