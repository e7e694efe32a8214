// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgtree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/bureau-foundation/blockarray/lib/codec"
)

// MaxDepth is the deepest container nesting DecodeAll accepts.
const MaxDepth = 512

// neverUsed is the one byte the MessagePack format leaves unassigned.
const neverUsed byte = 0xc1

// Decoded is the result of [DecodeAll].
type Decoded struct {
	// Values are the top-level values decoded before any error.
	Values []Value

	// Consumed is the number of input bytes covered by Values.
	Consumed int

	// Err is nil when the whole input decoded, otherwise a
	// *DecodeError.
	Err error
}

// Complete reports whether the whole input decoded.
func (d Decoded) Complete() bool { return d.Err == nil }

// Partial reports whether some values decoded before an error.
func (d Decoded) Partial() bool { return d.Err != nil && len(d.Values) > 0 }

// DecodeAll decodes every concatenated top-level value in data.
func DecodeAll(data []byte) Decoded {
	if len(data) == 0 {
		return Decoded{Err: &DecodeError{Offset: 0, Err: ErrEmpty}}
	}

	d := newTreeDecoder(data)
	var result Decoded
	for d.reader.Len() > 0 {
		value, err := d.value(0)
		if err != nil {
			result.Err = err
			return result
		}
		result.Values = append(result.Values, value)
		result.Consumed = d.offset()
	}
	return result
}

// ValidateSequence returns nil when data is non-empty and decodes
// completely as a sequence of values, otherwise the *DecodeError.
func ValidateSequence(data []byte) error {
	return DecodeAll(data).Err
}

type treeDecoder struct {
	data    []byte
	reader  *bytes.Reader
	decoder *codec.Decoder
}

func newTreeDecoder(data []byte) *treeDecoder {
	reader := bytes.NewReader(data)
	return &treeDecoder{
		data:    data,
		reader:  reader,
		decoder: codec.NewDecoder(reader),
	}
}

// offset is the position of the next unread byte. The decoder reads
// straight from the bytes.Reader, so its Len is exact.
func (d *treeDecoder) offset() int {
	return len(d.data) - d.reader.Len()
}

func (d *treeDecoder) value(depth int) (Value, error) {
	start := d.offset()
	code, err := d.decoder.PeekCode()
	if err != nil {
		return Value{}, d.fail(start, err)
	}

	switch {
	case code == neverUsed:
		return Value{}, &DecodeError{Offset: start, Err: fmt.Errorf("%w 0x%02x", ErrInvalidTag, code)}

	case code == msgpcode.Nil:
		if err := d.decoder.DecodeNil(); err != nil {
			return Value{}, d.fail(start, err)
		}
		return Nil(), nil

	case code == msgpcode.False, code == msgpcode.True:
		b, err := d.decoder.DecodeBool()
		if err != nil {
			return Value{}, d.fail(start, err)
		}
		return Bool(b), nil

	case code <= msgpcode.PosFixedNumHigh,
		code == msgpcode.Uint8, code == msgpcode.Uint16,
		code == msgpcode.Uint32, code == msgpcode.Uint64:
		u, err := d.decoder.DecodeUint64()
		if err != nil {
			return Value{}, d.fail(start, err)
		}
		return Uint(u), nil

	case code >= msgpcode.NegFixedNumLow,
		code == msgpcode.Int8, code == msgpcode.Int16,
		code == msgpcode.Int32, code == msgpcode.Int64:
		i, err := d.decoder.DecodeInt64()
		if err != nil {
			return Value{}, d.fail(start, err)
		}
		return Int(i), nil

	case code == msgpcode.Float:
		f, err := d.decoder.DecodeFloat32()
		if err != nil {
			return Value{}, d.fail(start, err)
		}
		return Float32(f), nil

	case code == msgpcode.Double:
		f, err := d.decoder.DecodeFloat64()
		if err != nil {
			return Value{}, d.fail(start, err)
		}
		return Float64(f), nil

	case code >= msgpcode.FixedStrLow && code <= msgpcode.FixedStrHigh,
		code == msgpcode.Str8, code == msgpcode.Str16, code == msgpcode.Str32:
		body, err := d.bytesValue(start)
		if err != nil {
			return Value{}, err
		}
		return RawString(body), nil

	case code == msgpcode.Bin8, code == msgpcode.Bin16, code == msgpcode.Bin32:
		body, err := d.bytesValue(start)
		if err != nil {
			return Value{}, err
		}
		return Binary(body), nil

	case code >= msgpcode.FixedArrayLow && code <= msgpcode.FixedArrayHigh,
		code == msgpcode.Array16, code == msgpcode.Array32:
		return d.array(start, depth)

	case code >= msgpcode.FixedMapLow && code <= msgpcode.FixedMapHigh,
		code == msgpcode.Map16, code == msgpcode.Map32:
		return d.mapValue(start, depth)

	case code == msgpcode.FixExt1, code == msgpcode.FixExt2, code == msgpcode.FixExt4,
		code == msgpcode.FixExt8, code == msgpcode.FixExt16,
		code == msgpcode.Ext8, code == msgpcode.Ext16, code == msgpcode.Ext32:
		extType, length, err := d.decoder.DecodeExtHeader()
		if err != nil {
			return Value{}, d.fail(start, err)
		}
		body, err := d.body(start, length)
		if err != nil {
			return Value{}, err
		}
		return Ext(extType, body), nil

	default:
		return Value{}, &DecodeError{Offset: start, Err: fmt.Errorf("%w 0x%02x", ErrInvalidTag, code)}
	}
}

// bytesValue reads a str or bin header and its body.
func (d *treeDecoder) bytesValue(start int) ([]byte, error) {
	length, err := d.decoder.DecodeBytesLen()
	if err != nil {
		return nil, d.fail(start, err)
	}
	return d.body(start, length)
}

// body reads length bytes after a header, refusing lengths the input
// cannot hold before allocating.
func (d *treeDecoder) body(start, length int) ([]byte, error) {
	if err := d.checkLength(start, length, length, "bytes"); err != nil {
		return nil, err
	}
	body := make([]byte, length)
	if err := d.decoder.ReadFull(body); err != nil {
		return nil, d.fail(start, err)
	}
	return body, nil
}

func (d *treeDecoder) array(start, depth int) (Value, error) {
	if depth >= MaxDepth {
		return Value{}, &DecodeError{Offset: start, Err: fmt.Errorf("%w: more than %d levels", ErrTooDeep, MaxDepth)}
	}
	count, err := d.decoder.DecodeArrayLen()
	if err != nil {
		return Value{}, d.fail(start, err)
	}
	// Every element takes at least one byte.
	if err := d.checkLength(start, count, count, "elements"); err != nil {
		return Value{}, err
	}

	items := make([]Value, 0, count)
	for range count {
		item, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return ArrayOf(items...), nil
}

func (d *treeDecoder) mapValue(start, depth int) (Value, error) {
	if depth >= MaxDepth {
		return Value{}, &DecodeError{Offset: start, Err: fmt.Errorf("%w: more than %d levels", ErrTooDeep, MaxDepth)}
	}
	count, err := d.decoder.DecodeMapLen()
	if err != nil {
		return Value{}, d.fail(start, err)
	}
	// Every entry takes at least two bytes.
	if err := d.checkLength(start, count, 2*count, "entries"); err != nil {
		return Value{}, err
	}

	pairs := make([]Pair, 0, count)
	for range count {
		key, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		value, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return MapOf(pairs...), nil
}

// checkLength rejects a declared count before anything is allocated.
// need is the fewest bytes the declared content occupies. Content the
// whole input could never hold is ErrInvalidLength; content that only
// runs past the end of the input is ErrTruncated.
func (d *treeDecoder) checkLength(start, count, need int, unit string) error {
	remaining := d.reader.Len()
	switch {
	case count < 0 || need > len(d.data):
		return &DecodeError{
			Offset: start,
			Err:    fmt.Errorf("%w: %d %s declared, input is %d bytes", ErrInvalidLength, count, unit, len(d.data)),
		}
	case need > remaining:
		return &DecodeError{
			Offset: start,
			Err:    fmt.Errorf("%w: %d %s declared, %d bytes remain", ErrTruncated, count, unit, remaining),
		}
	}
	return nil
}

// fail wraps an error from the underlying MessagePack reader. Running
// out of input is the only failure it can report once the type tag
// has been checked.
func (d *treeDecoder) fail(start int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &DecodeError{Offset: start, Err: ErrTruncated}
	}
	return &DecodeError{Offset: start, Err: fmt.Errorf("%w: %v", ErrInvalidTag, err)}
}
