// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package msgtree decodes arbitrary MessagePack into a generic value
// tree without a schema.
//
// Unlike decoding into map[string]any, the tree keeps everything a
// debugging tool needs to show: map entry order, non-string map keys,
// the signed/unsigned distinction of integers, the width of floats,
// extension type codes, and the exact bytes of strings that are not
// valid UTF-8.
//
// [DecodeAll] reads a buffer holding one or more concatenated values.
// Decoding stops at the first malformed value; the values before it
// are kept so callers can show a partial result next to the
// [DecodeError] and its byte offset. Declared lengths are checked
// against the remaining input before anything is allocated, so
// hostile length prefixes cannot force large allocations.
//
// [Dump] renders a tree in a compact diagnostic notation, and
// [Value.JSON] converts a value to a JSON-compatible form that
// preserves map order through [Object].
package msgtree
