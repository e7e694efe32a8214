// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decode

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/bureau-foundation/blockarray/cmd/blockarray/cli"
	"github.com/bureau-foundation/blockarray/lib/render"
)

// writeArtifact prints a rendered artifact. Text formats end with a
// newline; binary output is written byte for byte.
func writeArtifact(w io.Writer, artifact render.Artifact, colorize bool) error {
	if !artifact.Format.IsText() {
		_, err := w.Write(artifact.Data)
		return err
	}

	text := artifact.Text() + "\n"
	if colorize && artifact.Format.IsJSON() {
		return quick.Highlight(w, text, "json", "terminal256", "monokai")
	}
	_, err := io.WriteString(w, text)
	return err
}

// shouldColorize resolves a color mode for the given output. Only JSON
// documents are ever highlighted.
func shouldColorize(mode string, format render.Format, out io.Writer) bool {
	if !format.IsJSON() {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return cli.IsTerminal(out)
	}
}
