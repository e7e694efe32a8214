// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockarray

import (
	"bytes"
	"testing"
)

func TestEnvelope(t *testing.T) {
	unit, err := NewExtensionUnit(TypeLZ4BlockArray, []byte{0xcc, 0x05}, []byte{0x50, 'h', 'e', 'l', 'l', 'o'}, DefaultLimits())
	if err != nil {
		t.Fatalf("NewExtensionUnit: %v", err)
	}

	got, err := unit.Envelope()
	if err != nil {
		t.Fatalf("Envelope: %v", err)
	}

	want := []byte{
		0x92,             // array of 2
		0xd5, 0x62,       // fixext2, type 98
		0xcc, 0x05,       // header
		0xc4, 0x06,       // bin8, 6 bytes
		0x50, 'h', 'e', 'l', 'l', 'o',
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Envelope() = %x, want %x", got, want)
	}
}

func TestEnvelope_Deterministic(t *testing.T) {
	unit, err := NewExtensionUnit(TypeLZ4BlockArray, []byte{0xcd, 0x01, 0x2c}, bytes.Repeat([]byte{0xaa}, 300), DefaultLimits())
	if err != nil {
		t.Fatalf("NewExtensionUnit: %v", err)
	}

	first, err := unit.Envelope()
	if err != nil {
		t.Fatalf("Envelope: %v", err)
	}
	second, err := unit.Envelope()
	if err != nil {
		t.Fatalf("Envelope: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Envelope() is not deterministic")
	}
	// ext8 header for a 3-byte body: c7 03 62.
	if !bytes.Equal(first[1:4], []byte{0xc7, 0x03, 0x62}) {
		t.Errorf("extension header = %x, want c70362", first[1:4])
	}
}
