// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package blockarray models a single LZ4BlockArray extension block: the
// MessagePack extension (type 98) some cross-platform MessagePack
// libraries emit when LZ4 compression is enabled.
//
// On the wire the block is a two-element MessagePack array: an
// extension value whose body (the header) describes the uncompressed
// size, followed by a binary payload holding the compressed bytes.
// JavaScript tooling commonly dumps this as JSON with Node Buffer
// objects:
//
//	[
//	  {"buffer": {"type": "Buffer", "data": [204, 184]}, "type": 98},
//	  {"type": "Buffer", "data": [240, 19, 133, ...]}
//	]
//
// [ParseUnit] turns that JSON into an [ExtensionUnit]; [ParseUnits]
// handles dumps holding several (header, payload) pairs back to back.
// JSON comments and trailing commas are tolerated, since these dumps
// are usually pasted by hand.
//
// Every shape problem (wrong element count, wrong extension type, byte
// values outside 0-255, oversized header or payload) is reported as an
// [*InputShapeError]. Nothing downstream runs for an input that fails
// here.
//
// An ExtensionUnit is immutable: constructors copy the byte slices they
// receive, and [ExtensionUnit.Envelope] re-serializes the unit to the
// MessagePack wire shape it came from.
package blockarray
