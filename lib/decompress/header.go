// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/blockarray/lib/codec"
)

// sizeCandidates returns the possible uncompressed sizes encoded in
// header, de-duplicated, in the order they are tried: the whole header
// as a MessagePack integer, the trailing 1..4 bytes little-endian, then
// the trailing 2..4 bytes big-endian.
func sizeCandidates(header []byte) []uint64 {
	var candidates []uint64
	seen := make(map[uint64]bool)
	add := func(value uint64) {
		if !seen[value] {
			seen[value] = true
			candidates = append(candidates, value)
		}
	}

	if value, ok := codec.DecodeLength(header); ok {
		add(value)
	}
	for width := 1; width <= 4 && width <= len(header); width++ {
		add(littleEndian(header[len(header)-width:]))
	}
	for width := 2; width <= 4 && width <= len(header); width++ {
		add(bigEndian(header[len(header)-width:]))
	}
	return candidates
}

// declaredSize reads the header as a single length: a MessagePack
// integer when it is one, otherwise the big-endian value of the bytes
// after an optional unsigned-integer marker (0xcc-0xcf).
func declaredSize(header []byte) (uint64, bool) {
	if value, ok := codec.DecodeLength(header); ok {
		return value, true
	}
	body := header
	if len(body) > 1 && body[0] >= 0xcc && body[0] <= 0xcf {
		body = body[1:]
	}
	if len(body) == 0 || len(body) > 8 {
		return 0, false
	}
	return bigEndian(body), true
}

// plausibleSize reports whether a block of payloadLength compressed
// bytes could decode to size bytes. An LZ4 sequence expands at most 255
// times, and CompressBlockBound is the largest block any input of size
// bytes compresses to.
func plausibleSize(size uint64, payloadLength, maxOutput int) bool {
	if size == 0 || payloadLength == 0 {
		return false
	}
	if maxOutput > 0 && size > uint64(maxOutput) {
		return false
	}
	if size > 255*uint64(payloadLength) {
		return false
	}
	return lz4.CompressBlockBound(int(size)) >= payloadLength
}

func littleEndian(data []byte) uint64 {
	var value uint64
	for index := len(data) - 1; index >= 0; index-- {
		value = value<<8 | uint64(data[index])
	}
	return value
}

func bigEndian(data []byte) uint64 {
	var value uint64
	for _, b := range data {
		value = value<<8 | uint64(b)
	}
	return value
}
