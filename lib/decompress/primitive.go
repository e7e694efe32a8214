// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4 frame magic numbers, read little-endian from the first four
// bytes of the payload.
const (
	frameMagic       uint32 = 0x184D2204
	legacyFrameMagic uint32 = 0x184C2102
)

// Block decompresses a raw LZ4 block whose uncompressed size is known
// in advance. The result must be exactly expected bytes long.
func Block(compressed []byte, expected int) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, fmt.Errorf("lz4 block: empty input: %w", ErrCorrupt)
	}
	if expected <= 0 {
		return nil, fmt.Errorf("lz4 block: expected size %d: %w", expected, ErrLengthMismatch)
	}

	destination := make([]byte, expected)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w: %v", ErrCorrupt, err)
	}
	if read != expected {
		return nil, fmt.Errorf("lz4 block: got %d bytes, expected %d: %w", read, expected, ErrLengthMismatch)
	}
	return destination, nil
}

// Frame decompresses a self-describing LZ4 frame (modern or legacy).
// Output longer than limit bytes fails with [ErrOutputLimit]; a limit
// of zero or less disables the ceiling.
func Frame(compressed []byte, limit int) ([]byte, error) {
	if !HasFrameMagic(compressed) {
		return nil, fmt.Errorf("lz4 frame: missing frame magic: %w", ErrCorrupt)
	}

	var source io.Reader = lz4.NewReader(bytes.NewReader(compressed))
	if limit > 0 {
		source = io.LimitReader(source, int64(limit)+1)
	}

	var output bytes.Buffer
	if _, err := io.Copy(&output, source); err != nil {
		return nil, fmt.Errorf("lz4 frame: %w: %v", ErrCorrupt, err)
	}
	if limit > 0 && output.Len() > limit {
		return nil, fmt.Errorf("lz4 frame: more than %d bytes: %w", limit, ErrOutputLimit)
	}
	if output.Len() == 0 {
		return nil, fmt.Errorf("lz4 frame: no content: %w", ErrCorrupt)
	}
	return output.Bytes(), nil
}

// HasFrameMagic reports whether data starts with an LZ4 frame or
// legacy-frame magic number.
func HasFrameMagic(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	magic := binary.LittleEndian.Uint32(data)
	return magic == frameMagic || magic == legacyFrameMagic
}
