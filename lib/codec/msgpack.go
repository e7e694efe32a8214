// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Encoder is a MessagePack stream encoder. Type alias so consumers
// import only lib/codec, not vmihailenco/msgpack directly.
type Encoder = msgpack.Encoder

// Decoder is a MessagePack stream decoder. Type alias so consumers
// import only lib/codec, not vmihailenco/msgpack directly.
type Decoder = msgpack.Decoder

// Marshal encodes v to MessagePack using the deterministic encoder
// configuration.
func Marshal(v any) ([]byte, error) {
	var buffer bytes.Buffer
	if err := NewEncoder(&buffer).Encode(v); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// NewEncoder returns an encoder writing to w with compact integers,
// compact floats, and sorted map keys.
func NewEncoder(w io.Writer) *Encoder {
	encoder := msgpack.NewEncoder(w)
	encoder.UseCompactInts(true)
	encoder.UseCompactFloats(true)
	encoder.SetSortMapKeys(true)
	return encoder
}

// NewDecoder returns a decoder reading from r. When r is a
// *bytes.Reader the decoder reads from it directly without an extra
// buffering layer, so r.Len() reports exactly the unread bytes.
func NewDecoder(r io.Reader) *Decoder {
	return msgpack.NewDecoder(r)
}

// DecodeLength interprets data as exactly one non-negative MessagePack
// integer. The second return value is false when data is empty, holds
// anything other than an integer, holds a negative integer, or has
// bytes left over after the integer.
func DecodeLength(data []byte) (uint64, bool) {
	if len(data) == 0 {
		return 0, false
	}

	reader := bytes.NewReader(data)
	decoder := NewDecoder(reader)

	code, err := decoder.PeekCode()
	if err != nil {
		return 0, false
	}

	var value uint64
	switch {
	case code <= msgpcode.PosFixedNumHigh,
		code == msgpcode.Uint8, code == msgpcode.Uint16,
		code == msgpcode.Uint32, code == msgpcode.Uint64:
		value, err = decoder.DecodeUint64()
		if err != nil {
			return 0, false
		}

	case code == msgpcode.Int8, code == msgpcode.Int16,
		code == msgpcode.Int32, code == msgpcode.Int64:
		signed, err := decoder.DecodeInt64()
		if err != nil || signed < 0 {
			return 0, false
		}
		value = uint64(signed)

	default:
		return 0, false
	}

	if reader.Len() != 0 {
		return 0, false
	}
	return value, true
}
