// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render turns the outcome of one decode run into an output
// artifact.
//
// A [Report] bundles everything a run produced: the input unit, the
// strategy chain result, and the decoded tree (complete, partial, or
// empty). Its [Status] is one of decoded, partial, or raw fallback.
//
// [Render] maps a Report to one of four formats:
//
//   - json: metadata about the run (hex of the best raw buffer, its
//     BLAKE3 digest, strategy attempts, original lengths, the
//     re-serialized envelope) plus the human view
//   - hex: lowercase hex of the best raw buffer and nothing else
//   - binary: the best raw buffer verbatim
//   - human: a JSON object built from the decoded tree's top level,
//     always carrying a raw_debug dump
//
// Rendering never fails. When upstream stages failed, json and human
// still produce a well-formed object whose fields describe the
// failure, and hex and binary fall back to the original payload.
package render
