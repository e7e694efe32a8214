// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgtree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty reports an empty input buffer.
	ErrEmpty = errors.New("empty input")

	// ErrTruncated reports input that ends inside a value.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidTag reports a byte that does not start any MessagePack
	// value (0xc1).
	ErrInvalidTag = errors.New("invalid type tag")

	// ErrInvalidLength reports a declared length or element count
	// that the whole input could never hold.
	ErrInvalidLength = errors.New("declared length exceeds input size")

	// ErrTooDeep reports containers nested deeper than MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")
)

// DecodeError is a decode failure at a byte offset into the input.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("messagepack decode at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
