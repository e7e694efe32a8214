// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decode

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/bureau-foundation/blockarray/cmd/blockarray/cli"
	"github.com/bureau-foundation/blockarray/lib/render"
)

// splitArgs interprets the positional arguments [file|-] [format]. A
// lone argument that names a format, and is not an existing file, is
// taken as the format with input from stdin.
func splitArgs(args []string) (path, format string, err error) {
	switch len(args) {
	case 0:
		return "", "", nil
	case 1:
		if isFormatName(args[0]) && !fileExists(args[0]) {
			return "", args[0], nil
		}
		return args[0], "", nil
	case 2:
		if _, err := render.ParseFormat(args[1]); err != nil {
			return "", "", cli.Validation("%w", err)
		}
		return args[0], args[1], nil
	default:
		return "", "", cli.Validation("expected at most 2 arguments ([file|-] [format]), got %d", len(args))
	}
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		if stdin == nil {
			return nil, cli.Validation("no input file given and stdin is not available")
		}
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("input file %s does not exist", path)
		}
		if err != nil {
			return nil, cli.Internal("reading input: %w", err)
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, cli.Validation("input %s is empty", inputName(path))
	}
	return data, nil
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "from stdin"
	}
	return path
}

func isFormatName(arg string) bool {
	_, err := render.ParseFormat(arg)
	return err == nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
