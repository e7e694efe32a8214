// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bureau-foundation/blockarray/lib/msgtree"
)

// debugRawLimit caps the raw bytes quoted in raw_debug when nothing
// decoded.
const debugRawLimit = 64

// HumanObject builds the human view of a report. The decoded tree's
// first top-level value supplies the fields: a map contributes its
// entries, an array contributes problem-details names or index keys,
// and a scalar becomes "value". Further top-level values go under
// "additional_values".
//
// Diagnostic fields never replace decoded ones: when a decoded field
// already uses a diagnostic name, the diagnostic gets a leading
// underscore ("_error"). The one exception is "raw_debug", which is
// always present and replaces any decoded field of that name.
func HumanObject(report Report) msgtree.Object {
	var object msgtree.Object
	values := report.Tree.Values

	if len(values) > 0 {
		first := values[0]
		switch first.Kind {
		case msgtree.KindMap:
			for _, pair := range first.Map {
				object = append(object, msgtree.Member{Key: pair.Key.KeyText(), Value: pair.Value.JSON()})
			}
		case msgtree.KindArray:
			if problem, ok := problemDetails(first.Array); ok {
				object = problem
			} else {
				for index, item := range first.Array {
					object.Set(strconv.Itoa(index), item.JSON())
				}
			}
		default:
			object.Set("value", first.JSON())
		}

		if len(values) > 1 {
			additional := make([]any, len(values)-1)
			for index, value := range values[1:] {
				additional[index] = value.JSON()
			}
			addDiagnostic(&object, "additional_values", additional)
		}
	}

	if report.Tree.Err != nil && len(values) > 0 {
		addDiagnostic(&object, "decode_error", report.Tree.Err.Error())
		addDiagnostic(&object, "decode_error_offset", decodeErrorOffset(report.Tree.Err))
	}

	if report.Status() == StatusRawFallback || !report.Chain.Recovered {
		addDiagnostic(&object, "error", failureMessage(report))
		if report.Status() == StatusRawFallback {
			if text, ok := printableText(report.BestRaw()); ok {
				addDiagnostic(&object, "raw_string", text)
			}
		}
	}

	object.Delete("raw_debug")
	object = append(object, msgtree.Member{Key: "raw_debug", Value: rawDebug(report)})
	return object
}

// addDiagnostic appends a renderer-generated field under key, or under
// key prefixed with underscores until the name is free.
func addDiagnostic(object *msgtree.Object, key string, value any) {
	for {
		if _, taken := object.Get(key); !taken {
			break
		}
		key = "_" + key
	}
	*object = append(*object, msgtree.Member{Key: key, Value: value})
}

// problemFields are the ProblemDetails members MessagePack-CSharp
// writes, in key order, when a response is serialized as an array.
var problemFields = []struct {
	name     string
	kind     msgtree.Kind
	optional bool
}{
	{name: "type", kind: msgtree.KindString, optional: true},
	{name: "title", kind: msgtree.KindString},
	{name: "status", kind: msgtree.KindInteger},
	{name: "detail", kind: msgtree.KindString, optional: true},
	{name: "instance", kind: msgtree.KindString, optional: true},
}

// problemDetails names the first five elements of an array that has
// the shape of a serialized problem-details response. Elements past
// the fifth keep their index keys.
func problemDetails(items []msgtree.Value) (msgtree.Object, bool) {
	if len(items) < len(problemFields) {
		return nil, false
	}
	for index, field := range problemFields {
		item := items[index]
		if item.Kind == field.kind {
			continue
		}
		if field.optional && item.Kind == msgtree.KindNil {
			continue
		}
		return nil, false
	}

	object := make(msgtree.Object, 0, len(items))
	for index, field := range problemFields {
		object.Set(field.name, items[index].JSON())
	}
	for index := len(problemFields); index < len(items); index++ {
		object.Set(strconv.Itoa(index), items[index].JSON())
	}
	return object, true
}

// failureMessage explains why the human view has no complete decode.
func failureMessage(report Report) string {
	switch {
	case !report.Chain.Recovered && len(report.Tree.Values) > 0:
		return "failed to decompress data after every strategy; fields were decoded from the original payload"
	case !report.Chain.Recovered:
		return "failed to decompress data after every strategy"
	default:
		return fmt.Sprintf("decompressed data (%s) is not valid MessagePack", report.Chain.Strategy)
	}
}

// rawDebug is the diagnostic dump: the whole decoded tree when
// anything decoded, otherwise the chain's attempts, the decode error,
// and the leading raw bytes. It is never empty.
func rawDebug(report Report) string {
	var lines []string
	if len(report.Tree.Values) > 0 {
		lines = append(lines, msgtree.Dump(report.Tree.Values))
		if report.Tree.Err != nil {
			lines = append(lines, "decode error: "+report.Tree.Err.Error())
		}
		return strings.Join(lines, "\n")
	}

	if report.Chain.Recovered {
		lines = append(lines, "strategy: "+report.Chain.Strategy)
	} else {
		lines = append(lines, "chain exhausted:")
		for _, attempt := range report.Chain.Attempts {
			lines = append(lines, fmt.Sprintf("  %s: %v", attempt.Strategy, attempt.Err))
		}
	}
	if report.Tree.Err != nil {
		lines = append(lines, "decode error: "+report.Tree.Err.Error())
	}

	raw := report.BestRaw()
	quoted := raw
	if len(quoted) > debugRawLimit {
		quoted = quoted[:debugRawLimit]
	}
	suffix := ""
	if len(raw) > len(quoted) {
		suffix = fmt.Sprintf(" (first %d of %d bytes)", len(quoted), len(raw))
	}
	lines = append(lines, fmt.Sprintf("raw: h'%s'%s", hex.EncodeToString(quoted), suffix))
	return strings.Join(lines, "\n")
}

func decodeErrorOffset(err error) any {
	var decodeError *msgtree.DecodeError
	if errors.As(err, &decodeError) {
		return decodeError.Offset
	}
	return nil
}

// printableText returns data as a string when it is valid UTF-8 with
// at least one printable character other than whitespace and no
// control characters other than whitespace.
func printableText(data []byte) (string, bool) {
	if len(data) == 0 || !utf8.Valid(data) {
		return "", false
	}
	text := string(data)
	printable := false
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return "", false
		}
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			printable = true
		}
	}
	return text, printable
}
