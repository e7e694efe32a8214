// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
)

// Options adjusts rendering.
type Options struct {
	// Compact emits single-line JSON instead of 2-space indentation.
	Compact bool

	// Envelope makes hex and binary output the re-serialized
	// MessagePack envelope [ext(98, header), bin(payload)] instead of
	// the best raw buffer.
	Envelope bool
}

// Artifact is a rendered result. Data is UTF-8 text for every format
// except binary.
type Artifact struct {
	Format Format
	Status Status
	Data   []byte
}

// Text returns Data as a string.
func (a Artifact) Text() string { return string(a.Data) }

// Success reports whether the run fully decoded.
func (a Artifact) Success() bool { return a.Status == StatusDecoded }

// Render produces the artifact for report in the given format.
func Render(report Report, format Format, options Options) Artifact {
	artifact := Artifact{Format: format, Status: report.Status()}

	switch format {
	case FormatHex:
		artifact.Data = []byte(hex.EncodeToString(rawOutput(report, options)))
	case FormatBinary:
		artifact.Data = bytes.Clone(rawOutput(report, options))
	case FormatHuman:
		artifact.Data = EncodeJSON(HumanObject(report), options.Compact)
	default:
		artifact.Format = FormatJSON
		artifact.Data = EncodeJSON(JSONObject(report), options.Compact)
	}
	return artifact
}

// rawOutput is the byte content of hex and binary output.
func rawOutput(report Report, options Options) []byte {
	if options.Envelope {
		if envelope, err := report.Unit.Envelope(); err == nil {
			return envelope
		}
	}
	return report.BestRaw()
}

// EncodeJSON marshals value without HTML escaping, indented with two
// spaces unless compact. A value that cannot be marshaled produces a
// minimal error object instead.
func EncodeJSON(value any, compact bool) []byte {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(value); err != nil {
		fallback, _ := json.Marshal(map[string]string{"error": "render: " + err.Error()})
		return fallback
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte{'\n'})
}
