// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockarray

import (
	"bytes"
	"fmt"
)

// TypeLZ4BlockArray is the MessagePack extension type code of an
// LZ4BlockArray block. It is the only type this package accepts.
const TypeLZ4BlockArray uint8 = 98

// Limits bounds the sizes accepted before any decompression work
// starts, so the worst-case memory use of a run is a function of the
// configuration rather than of the input.
type Limits struct {
	// MaxHeaderBytes is the longest accepted header. Real headers
	// are 2-5 bytes (a MessagePack integer).
	MaxHeaderBytes int

	// MaxPayloadBytes is the longest accepted payload.
	MaxPayloadBytes int

	// MaxOutputBytes is the largest uncompressed buffer any
	// decompression strategy may produce.
	MaxOutputBytes int
}

// DefaultLimits returns the limits used when no configuration
// overrides them.
func DefaultLimits() Limits {
	return Limits{
		MaxHeaderBytes:  16,
		MaxPayloadBytes: 16 << 20,
		MaxOutputBytes:  64 << 20,
	}
}

// ExtensionUnit is one parsed LZ4BlockArray block. The zero value is
// not useful; construct with [NewExtensionUnit], [ParseUnit], or
// [ParseUnits].
type ExtensionUnit struct {
	tag     uint8
	header  []byte
	payload []byte
}

// NewExtensionUnit validates tag and sizes and returns a unit holding
// private copies of header and payload.
func NewExtensionUnit(tag uint8, header, payload []byte, limits Limits) (*ExtensionUnit, error) {
	if tag != TypeLZ4BlockArray {
		return nil, &InputShapeError{
			Field:  "type",
			Reason: fmt.Sprintf("unsupported extension type %d (want %d)", tag, TypeLZ4BlockArray),
		}
	}
	if limits.MaxHeaderBytes > 0 && len(header) > limits.MaxHeaderBytes {
		return nil, &InputShapeError{
			Field:  "buffer.data",
			Reason: fmt.Sprintf("header is %d bytes, limit is %d", len(header), limits.MaxHeaderBytes),
		}
	}
	if limits.MaxPayloadBytes > 0 && len(payload) > limits.MaxPayloadBytes {
		return nil, &InputShapeError{
			Field:  "data",
			Reason: fmt.Sprintf("payload is %d bytes, limit is %d", len(payload), limits.MaxPayloadBytes),
		}
	}

	return &ExtensionUnit{
		tag:     tag,
		header:  bytes.Clone(header),
		payload: bytes.Clone(payload),
	}, nil
}

// Tag returns the extension type code (always [TypeLZ4BlockArray]).
func (u *ExtensionUnit) Tag() uint8 { return u.tag }

// Header returns the header bytes. The returned slice is shared with
// the unit and must not be modified.
func (u *ExtensionUnit) Header() []byte { return u.header }

// Payload returns the payload bytes. The returned slice is shared with
// the unit and must not be modified.
func (u *ExtensionUnit) Payload() []byte { return u.payload }

// InputShapeError reports a malformed extension wrapper. It is the only
// error that stops a run before decompression.
type InputShapeError struct {
	// Block is the one-based pair number within a multi-block input,
	// or zero when the input holds a single block.
	Block int

	// Field is a JSON path relative to the block, e.g. "buffer.data[3]".
	Field string

	// Reason describes what is wrong with the field.
	Reason string
}

func (e *InputShapeError) Error() string {
	if e.Block > 0 {
		return fmt.Sprintf("block %d: %s: %s", e.Block, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
