// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides blockarray's standard MessagePack encoding
// configuration.
//
// blockarray deals with two serialization formats with a clear
// boundary:
//
//   - JSON for everything a person or a script reads: the Node-style
//     Buffer wrapper the tool consumes, and every rendered output.
//   - MessagePack for the data being inspected: the LZ4BlockArray
//     envelope (an extension value of type 98 followed by a binary
//     payload) and the nested value tree inside the decompressed
//     payload.
//
// This package holds the shared encoder and decoder setup so that every
// package reading or writing MessagePack agrees on it. The encoder
// writes the smallest integer and float representations and sorts map
// keys, so the same logical value always produces identical bytes:
//
//	data, err := codec.Marshal(value)
//
// For streaming or token-level access:
//
//	encoder := codec.NewEncoder(&buffer)
//	decoder := codec.NewDecoder(bytes.NewReader(data))
//
// [DecodeLength] interprets a byte slice as a single non-negative
// MessagePack integer. LZ4BlockArray headers carry the uncompressed
// payload size in exactly that form (a 0xcc marker followed by the
// size for payloads up to 255 bytes).
package codec
