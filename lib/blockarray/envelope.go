// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockarray

import (
	"bytes"
	"fmt"

	"github.com/bureau-foundation/blockarray/lib/codec"
)

// Envelope re-serializes the unit to its MessagePack wire shape: a
// two-element array holding ext(98, header) and bin(payload). Feeding
// the result to a MessagePack library with LZ4BlockArray support
// decodes the original value.
func (u *ExtensionUnit) Envelope() ([]byte, error) {
	var buffer bytes.Buffer
	encoder := codec.NewEncoder(&buffer)

	if err := encoder.EncodeArrayLen(2); err != nil {
		return nil, fmt.Errorf("encode envelope array: %w", err)
	}
	if err := encoder.EncodeExtHeader(int8(u.tag), len(u.header)); err != nil {
		return nil, fmt.Errorf("encode extension header: %w", err)
	}
	// The encoder writes straight into buffer (bytes.Buffer needs no
	// extra buffering layer), so the extension body can follow directly.
	buffer.Write(u.header)
	if err := encoder.EncodeBytes(u.payload); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return buffer.Bytes(), nil
}
