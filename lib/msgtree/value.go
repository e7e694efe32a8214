// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgtree

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindBinary
	KindArray
	KindMap
	KindExtension
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindExtension:
		return "extension"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Value is one node of a decoded MessagePack tree. Only the fields
// relevant to Kind are set.
type Value struct {
	Kind Kind

	Bool bool

	// Int holds integers that fit int64. Integers above
	// math.MaxInt64 are held in Uint with Unsigned set.
	Int      int64
	Uint     uint64
	Unsigned bool

	// Float holds both float widths; Float32 records that the
	// encoded value was single precision.
	Float   float64
	Float32 bool

	// Bytes holds string contents (exactly as encoded, valid UTF-8 or
	// not), binary data, and extension data.
	Bytes []byte

	ExtType int8

	Array []Value
	Map   []Pair
}

// Pair is one map entry. Keys may be any kind.
type Pair struct {
	Key   Value
	Value Value
}

// Nil returns a nil value.
func Nil() Value { return Value{Kind: KindNil} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int returns a signed integer value.
func Int(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Uint returns an unsigned integer value.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Value{Kind: KindInteger, Int: int64(u)}
	}
	return Value{Kind: KindInteger, Uint: u, Unsigned: true}
}

// Float64 returns a double-precision float value.
func Float64(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Float32 returns a single-precision float value.
func Float32(f float32) Value { return Value{Kind: KindFloat, Float: float64(f), Float32: true} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Bytes: []byte(s)} }

// RawString returns a string value with the given bytes, which need
// not be valid UTF-8.
func RawString(b []byte) Value { return Value{Kind: KindString, Bytes: b} }

// Binary returns a binary value.
func Binary(b []byte) Value { return Value{Kind: KindBinary, Bytes: b} }

// ArrayOf returns an array value.
func ArrayOf(items ...Value) Value { return Value{Kind: KindArray, Array: items} }

// MapOf returns a map value with entries in the given order.
func MapOf(pairs ...Pair) Value { return Value{Kind: KindMap, Map: pairs} }

// Ext returns an extension value.
func Ext(extType int8, data []byte) Value {
	return Value{Kind: KindExtension, ExtType: extType, Bytes: data}
}

// Text returns string contents. The second result is false for
// non-strings and for strings that are not valid UTF-8.
func (v Value) Text() (string, bool) {
	if v.Kind != KindString || !utf8.Valid(v.Bytes) {
		return "", false
	}
	return string(v.Bytes), true
}

// InvalidUTF8 returns the byte offset of the first invalid UTF-8
// sequence in a string value. ok is false for valid strings and for
// other kinds.
func (v Value) InvalidUTF8() (offset int, ok bool) {
	if v.Kind != KindString {
		return 0, false
	}
	for index := 0; index < len(v.Bytes); {
		r, size := utf8.DecodeRune(v.Bytes[index:])
		if r == utf8.RuneError && size <= 1 {
			return index, true
		}
		index += size
	}
	return 0, false
}
