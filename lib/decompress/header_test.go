// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"slices"
	"testing"
)

func TestSizeCandidates(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   []uint64
	}{
		{
			name:   "uint8 messagepack integer",
			header: []byte{0xcc, 0xb8},
			want:   []uint64{184, 0xb8cc, 0xccb8},
		},
		{
			name:   "big-endian size after uint8 marker",
			header: []byte{0xcc, 0x01, 0x2c},
			want:   []uint64{0x2c, 0x2c01, 0x2c01cc, 0x012c, 0xcc012c},
		},
		{
			name:   "uint16 messagepack integer",
			header: []byte{0xcd, 0x01, 0x2c},
			want:   []uint64{300, 0x2c, 0x2c01, 0x2c01cd, 0xcd012c},
		},
		{
			name:   "single byte",
			header: []byte{0x10},
			want:   []uint64{16},
		},
		{
			name:   "empty",
			header: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sizeCandidates(tt.header)
			if !slices.Equal(got, tt.want) {
				t.Errorf("sizeCandidates(%x) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestDeclaredSize(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   uint64
		wantOK bool
	}{
		{name: "messagepack integer", header: []byte{0xcc, 0xb8}, want: 184, wantOK: true},
		{name: "big-endian after marker", header: []byte{0xcc, 0x01, 0x2c}, want: 300, wantOK: true},
		{name: "bare big-endian", header: []byte{0x01, 0x00, 0x00}, want: 65536, wantOK: true},
		{name: "too wide", header: make([]byte, 10), wantOK: false},
		{name: "empty", header: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := declaredSize(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("declaredSize(%x) ok = %v, want %v", tt.header, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("declaredSize(%x) = %d, want %d", tt.header, got, tt.want)
			}
		})
	}
}

func TestPlausibleSize(t *testing.T) {
	tests := []struct {
		name          string
		size          uint64
		payloadLength int
		maxOutput     int
		want          bool
	}{
		{name: "ordinary", size: 184, payloadLength: 60, maxOutput: 1 << 20, want: true},
		{name: "zero size", size: 0, payloadLength: 60, maxOutput: 1 << 20},
		{name: "above output limit", size: 2 << 20, payloadLength: 1 << 20, maxOutput: 1 << 20},
		{name: "beyond maximum expansion", size: 256, payloadLength: 1, maxOutput: 0},
		{name: "payload longer than worst-case block", size: 10, payloadLength: 100, maxOutput: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plausibleSize(tt.size, tt.payloadLength, tt.maxOutput); got != tt.want {
				t.Errorf("plausibleSize(%d, %d, %d) = %v, want %v",
					tt.size, tt.payloadLength, tt.maxOutput, got, tt.want)
			}
		})
	}
}
