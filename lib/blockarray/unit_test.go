// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockarray

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewExtensionUnit_RejectsOtherTags(t *testing.T) {
	for tag := 0; tag <= 255; tag++ {
		if uint8(tag) == TypeLZ4BlockArray {
			continue
		}
		_, err := NewExtensionUnit(uint8(tag), []byte{0xcc, 0x01}, []byte{0x10, 0x00}, DefaultLimits())
		var shapeError *InputShapeError
		if !errors.As(err, &shapeError) {
			t.Fatalf("tag %d: error = %v, want *InputShapeError", tag, err)
		}
		if shapeError.Field != "type" {
			t.Errorf("tag %d: field = %q, want \"type\"", tag, shapeError.Field)
		}
	}
}

func TestNewExtensionUnit_CopiesInput(t *testing.T) {
	header := []byte{0xcc, 0x05}
	payload := []byte{0x50, 'h', 'e', 'l', 'l', 'o'}

	unit, err := NewExtensionUnit(TypeLZ4BlockArray, header, payload, DefaultLimits())
	if err != nil {
		t.Fatalf("NewExtensionUnit: %v", err)
	}

	header[1] = 0xff
	payload[0] = 0xff

	if !bytes.Equal(unit.Header(), []byte{0xcc, 0x05}) {
		t.Errorf("Header() = %x after caller mutation, want cc05", unit.Header())
	}
	if unit.Payload()[0] != 0x50 {
		t.Errorf("Payload()[0] = %#x after caller mutation, want 0x50", unit.Payload()[0])
	}
	if unit.Tag() != TypeLZ4BlockArray {
		t.Errorf("Tag() = %d, want %d", unit.Tag(), TypeLZ4BlockArray)
	}
}

func TestNewExtensionUnit_Limits(t *testing.T) {
	limits := Limits{MaxHeaderBytes: 4, MaxPayloadBytes: 8, MaxOutputBytes: 64}

	tests := []struct {
		name      string
		header    []byte
		payload   []byte
		wantField string
	}{
		{name: "header too long", header: make([]byte, 5), payload: []byte{1}, wantField: "buffer.data"},
		{name: "payload too long", header: []byte{0xcc, 1}, payload: make([]byte, 9), wantField: "data"},
		{name: "at the limits", header: make([]byte, 4), payload: make([]byte, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtensionUnit(TypeLZ4BlockArray, tt.header, tt.payload, limits)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var shapeError *InputShapeError
			if !errors.As(err, &shapeError) {
				t.Fatalf("error = %v, want *InputShapeError", err)
			}
			if shapeError.Field != tt.wantField {
				t.Errorf("field = %q, want %q", shapeError.Field, tt.wantField)
			}
			if !strings.Contains(shapeError.Reason, "limit") {
				t.Errorf("reason = %q, want to mention the limit", shapeError.Reason)
			}
		})
	}
}

func TestInputShapeError_Message(t *testing.T) {
	single := &InputShapeError{Field: "data[2]", Reason: "value 300 is not a byte (0-255)"}
	if got, want := single.Error(), "data[2]: value 300 is not a byte (0-255)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	batch := &InputShapeError{Block: 3, Field: "type", Reason: "unsupported extension type 99 (want 98)"}
	if got, want := batch.Error(), "block 3: type: unsupported extension type 99 (want 98)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
