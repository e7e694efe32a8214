// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgtree

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// Dump renders values in diagnostic notation, one top-level value per
// line:
//
//	nil  true  42  1.5  "text"  h'00ff'  [1, 2]  {"k": 1}
//	ext(98, h'cc10')  invalid_utf8(h'ff', offset 0)
//
// The output is deterministic for a given tree.
func Dump(values []Value) string {
	var builder strings.Builder
	for index, value := range values {
		if index > 0 {
			builder.WriteByte('\n')
		}
		writeDump(&builder, value)
	}
	return builder.String()
}

// Dump renders a single value in diagnostic notation.
func (v Value) Dump() string {
	var builder strings.Builder
	writeDump(&builder, v)
	return builder.String()
}

func writeDump(builder *strings.Builder, v Value) {
	switch v.Kind {
	case KindNil:
		builder.WriteString("nil")
	case KindBool:
		builder.WriteString(strconv.FormatBool(v.Bool))
	case KindInteger:
		builder.WriteString(v.integerText())
	case KindFloat:
		builder.WriteString(v.floatText())
	case KindString:
		if offset, invalid := v.InvalidUTF8(); invalid {
			builder.WriteString("invalid_utf8(h'")
			builder.WriteString(hex.EncodeToString(v.Bytes))
			builder.WriteString("', offset ")
			builder.WriteString(strconv.Itoa(offset))
			builder.WriteByte(')')
			return
		}
		builder.WriteString(strconv.Quote(string(v.Bytes)))
	case KindBinary:
		builder.WriteString("h'")
		builder.WriteString(hex.EncodeToString(v.Bytes))
		builder.WriteByte('\'')
	case KindArray:
		builder.WriteByte('[')
		for index, item := range v.Array {
			if index > 0 {
				builder.WriteString(", ")
			}
			writeDump(builder, item)
		}
		builder.WriteByte(']')
	case KindMap:
		builder.WriteByte('{')
		for index, pair := range v.Map {
			if index > 0 {
				builder.WriteString(", ")
			}
			writeDump(builder, pair.Key)
			builder.WriteString(": ")
			writeDump(builder, pair.Value)
		}
		builder.WriteByte('}')
	case KindExtension:
		builder.WriteString("ext(")
		builder.WriteString(strconv.Itoa(int(v.ExtType)))
		builder.WriteString(", h'")
		builder.WriteString(hex.EncodeToString(v.Bytes))
		builder.WriteString("')")
	default:
		builder.WriteString("undefined")
	}
}

func (v Value) integerText() string {
	if v.Unsigned {
		return strconv.FormatUint(v.Uint, 10)
	}
	return strconv.FormatInt(v.Int, 10)
}

// floatText always marks floats as such: 1.0 rather than 1.
func (v Value) floatText() string {
	switch {
	case math.IsNaN(v.Float):
		return "NaN"
	case math.IsInf(v.Float, 1):
		return "Infinity"
	case math.IsInf(v.Float, -1):
		return "-Infinity"
	}
	bits := 64
	if v.Float32 {
		bits = 32
	}
	text := strconv.FormatFloat(v.Float, 'g', -1, bits)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text
}
