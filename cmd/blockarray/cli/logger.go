// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal the output uses slog.TextHandler; otherwise (pipes, files,
// CI) it uses slog.JSONHandler.
//
// The level is read from level on every record, so a caller can lower
// it after flags and configuration are known:
//
//	level := new(slog.LevelVar)
//	logger := cli.NewCommandLogger(os.Stderr, level)
//	if verbose {
//	    level.Set(slog.LevelDebug)
//	}
//
// A nil level means slog.LevelInfo.
func NewCommandLogger(w io.Writer, level *slog.LevelVar) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if level != nil {
		options.Level = level
	}

	var handler slog.Handler
	if IsTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
