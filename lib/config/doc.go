// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for blockarray.
//
// Configuration is loaded from a single file specified by either a
// --config flag (via [LoadFile]) or the BLOCKARRAY_CONFIG environment
// variable (via [Load]). [Resolve] applies that precedence and falls
// back to [Default] when neither is given. There is no ~/.config
// discovery and no automatic file search, and no environment variable
// overrides an individual value.
//
// Keys the file does not know are errors, so a misspelled limit cannot
// silently leave the default in place. Byte sizes accept plain
// integers or human-readable strings ("16MiB", "64 MB").
//
// Key exports:
//
//   - [Config] -- master struct with Limits, Output, Log, Batch
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load], [LoadFile], and [Resolve] -- the entry points for loading
//
// This package depends on no other blockarray packages.
package config
