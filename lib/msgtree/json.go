// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgtree

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Member is one key of an [Object].
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that marshals its members in insertion
// order.
type Object []Member

// Set replaces the value of an existing key in place or appends a new
// member.
func (o *Object) Set(key string, value any) {
	for index := range *o {
		if (*o)[index].Key == key {
			(*o)[index].Value = value
			return
		}
	}
	*o = append(*o, Member{Key: key, Value: value})
}

// Delete removes every member named key.
func (o *Object) Delete(key string) {
	*o = slices.DeleteFunc(*o, func(member Member) bool { return member.Key == key })
}

// Get returns the value of the first member named key.
func (o Object) Get(key string) (any, bool) {
	for _, member := range o {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for index, member := range o {
		keys[index] = member.Key
	}
	return keys
}

// MarshalJSON writes the members in order without HTML escaping.
func (o Object) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, member := range o {
		if index > 0 {
			buffer.WriteByte(',')
		}
		key, err := marshalUnescaped(member.Key)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		value, err := marshalUnescaped(member.Value)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", member.Key, err)
		}
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func marshalUnescaped(value any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte{'\n'}), nil
}

// JSON returns a JSON-compatible view of the value: nil, bool, int64,
// uint64, float64, json.Number, string, []int (binary), []any, or
// [Object]. Maps keep their entry order; keys that are not valid
// strings are rendered with [Value.Dump]. Extensions become
// {"ext_type", "ext_data"}, strings that are not valid UTF-8 become
// {"invalid_utf8", "error"}, and non-finite floats become the strings
// "NaN", "+Inf" and "-Inf".
func (v Value) JSON() any {
	switch v.Kind {
	case KindNil:
		return nil
	case KindBool:
		return v.Bool
	case KindInteger:
		if v.Unsigned {
			return v.Uint
		}
		return v.Int
	case KindFloat:
		switch {
		case math.IsNaN(v.Float):
			return "NaN"
		case math.IsInf(v.Float, 1):
			return "+Inf"
		case math.IsInf(v.Float, -1):
			return "-Inf"
		case v.Float32:
			return json.Number(strconv.FormatFloat(v.Float, 'g', -1, 32))
		default:
			return v.Float
		}
	case KindString:
		if offset, invalid := v.InvalidUTF8(); invalid {
			return Object{
				{Key: "invalid_utf8", Value: hex.EncodeToString(v.Bytes)},
				{Key: "error", Value: fmt.Sprintf("invalid UTF-8 at byte %d", offset)},
			}
		}
		return string(v.Bytes)
	case KindBinary:
		return byteInts(v.Bytes)
	case KindArray:
		items := make([]any, len(v.Array))
		for index, item := range v.Array {
			items[index] = item.JSON()
		}
		return items
	case KindMap:
		object := make(Object, 0, len(v.Map))
		// Duplicate keys are kept: the object mirrors the map exactly.
		for _, pair := range v.Map {
			object = append(object, Member{Key: pair.Key.KeyText(), Value: pair.Value.JSON()})
		}
		return object
	case KindExtension:
		return Object{
			{Key: "ext_type", Value: int(v.ExtType)},
			{Key: "ext_data", Value: byteInts(v.Bytes)},
		}
	default:
		return nil
	}
}

// KeyText returns the text used for the value as a JSON object key:
// the string itself for valid strings, the diagnostic dump otherwise.
func (v Value) KeyText() string {
	if text, ok := v.Text(); ok {
		return text
	}
	return v.Dump()
}

// byteInts widens bytes so encoding/json emits an array of numbers
// rather than a base64 string.
func byteInts(data []byte) []int {
	result := make([]int, len(data))
	for index, b := range data {
		result[index] = int(b)
	}
	return result
}
