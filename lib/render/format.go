// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"
)

// Format selects the output representation.
type Format uint8

const (
	FormatJSON Format = iota
	FormatHex
	FormatBinary
	FormatHuman
)

// Formats lists every format in display order.
var Formats = []Format{FormatJSON, FormatHex, FormatBinary, FormatHuman}

// String returns the format name as accepted by [ParseFormat].
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHex:
		return "hex"
	case FormatBinary:
		return "binary"
	case FormatHuman:
		return "human"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// IsText reports whether the format produces UTF-8 text.
func (f Format) IsText() bool { return f != FormatBinary }

// IsJSON reports whether the format produces a JSON document.
func (f Format) IsJSON() bool { return f == FormatJSON || f == FormatHuman }

// ParseFormat parses a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "hex":
		return FormatHex, nil
	case "binary", "bin":
		return FormatBinary, nil
	case "human":
		return FormatHuman, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (valid: json, hex, binary, human)", name)
	}
}

// Status is the quality of a run's result.
type Status uint8

const (
	// StatusDecoded means a strategy recovered a buffer that decoded
	// completely.
	StatusDecoded Status = iota

	// StatusPartial means some values decoded before an error.
	StatusPartial

	// StatusRawFallback means nothing decoded; output is based on the
	// raw bytes alone.
	StatusRawFallback
)

// String returns the status name used in json output.
func (s Status) String() string {
	switch s {
	case StatusDecoded:
		return "decoded"
	case StatusPartial:
		return "partial"
	case StatusRawFallback:
		return "raw_fallback"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Worst returns the lower-quality of two statuses.
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}
