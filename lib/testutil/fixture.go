// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/blockarray/lib/codec"
)

// MessagePack encodes value with the shared codec configuration.
func MessagePack(t testing.TB, value any) []byte {
	t.Helper()
	data, err := codec.Marshal(value)
	if err != nil {
		t.Fatalf("encoding MessagePack fixture: %v", err)
	}
	return data
}

// CompressBlock LZ4-compresses data as a single raw block. The
// destination is sized with CompressBlockBound, so incompressible input
// still produces a valid (literal-only) block instead of zero bytes.
func CompressBlock(t testing.TB, data []byte) []byte {
	t.Helper()
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		t.Fatalf("compressing LZ4 block fixture: %v", err)
	}
	if written == 0 {
		t.Fatalf("compressing LZ4 block fixture: no output for %d input bytes", len(data))
	}
	return destination[:written]
}

// CompressFrame LZ4-compresses data as a self-describing frame.
func CompressFrame(t testing.TB, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("writing LZ4 frame fixture: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing LZ4 frame fixture: %v", err)
	}
	return buffer.Bytes()
}

// SizeHeader returns the header bytes for an uncompressed size: 0xcc
// followed by the size for sizes up to 255, otherwise a 0xcd or 0xce
// MessagePack integer.
func SizeHeader(size int) []byte {
	switch {
	case size <= 0xff:
		return []byte{0xcc, byte(size)}
	case size <= 0xffff:
		return []byte{0xcd, byte(size >> 8), byte(size)}
	default:
		return []byte{0xce, byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)}
	}
}

// bufferJSON mirrors the JSON form of a Node.js Buffer.
type bufferJSON struct {
	Type string `json:"type"`
	Data []int  `json:"data"`
}

// headerJSON is the first element of the JSON envelope.
type headerJSON struct {
	Buffer bufferJSON `json:"buffer"`
	Type   int        `json:"type"`
}

// Pair is one (tag, header, payload) block for [EnvelopeJSON].
type Pair struct {
	Tag     int
	Header  []byte
	Payload []byte
}

// EnvelopeJSON renders blocks in the Node Buffer JSON shape:
// [{"buffer":{...},"type":98},{"type":"Buffer","data":[...]}, ...].
func EnvelopeJSON(t testing.TB, blocks ...Pair) []byte {
	t.Helper()
	var elements []any
	for _, block := range blocks {
		elements = append(elements,
			headerJSON{Buffer: bufferJSON{Type: "Buffer", Data: byteInts(block.Header)}, Type: block.Tag},
			bufferJSON{Type: "Buffer", Data: byteInts(block.Payload)},
		)
	}
	data, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		t.Fatalf("encoding JSON envelope fixture: %v", err)
	}
	return data
}

// WriteFile writes data to a file in a fresh temporary directory and
// returns its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}
	return path
}

// byteInts widens bytes so encoding/json emits numbers rather than a
// base64 string.
func byteInts(data []byte) []int {
	result := make([]int, len(data))
	for index, value := range data {
		result[index] = int(value)
	}
	return result
}
