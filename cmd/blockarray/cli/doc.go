// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the blockarray binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// flags with pflag, and prints structured help. Typos in command and
// flag names get an edit-distance suggestion. Flags are usually
// declared as a tagged params struct and bound with [FlagsFromParams].
//
// Commands report failures by returning errors. A [ToolError] carries a
// category (validation, not found, internal) and an [ExitError] asks
// main for a specific exit code without printing anything further.
package cli
