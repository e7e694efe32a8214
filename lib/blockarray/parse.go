// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockarray

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// ParseUnit parses the JSON form of a single LZ4BlockArray block: an
// array of exactly two elements, the extension header object and the
// payload Buffer object.
func ParseUnit(data []byte, limits Limits) (*ExtensionUnit, error) {
	elements, err := decodeElements(data)
	if err != nil {
		return nil, err
	}
	if len(elements) != 2 {
		return nil, &InputShapeError{
			Field:  "$",
			Reason: fmt.Sprintf("expected 2 elements (header, payload), got %d", len(elements)),
		}
	}
	return parsePair(elements[0], elements[1], 0, limits)
}

// ParseUnits parses a JSON array holding one or more (header, payload)
// pairs back to back. Any malformed pair fails the whole input; the
// error's Block field names the offending pair.
func ParseUnits(data []byte, limits Limits) ([]*ExtensionUnit, error) {
	elements, err := decodeElements(data)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 || len(elements)%2 != 0 {
		return nil, &InputShapeError{
			Field:  "$",
			Reason: fmt.Sprintf("expected a non-zero, even number of elements (header, payload pairs), got %d", len(elements)),
		}
	}

	units := make([]*ExtensionUnit, 0, len(elements)/2)
	for index := 0; index < len(elements); index += 2 {
		unit, err := parsePair(elements[index], elements[index+1], index/2+1, limits)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

// decodeElements strips JSONC syntax and decodes the top-level array.
// Numbers are kept as json.Number so byte values can be range-checked
// without float rounding.
func decodeElements(data []byte) ([]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, &InputShapeError{Field: "$", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, &InputShapeError{Field: "$", Reason: "unexpected data after the top-level array"}
	}

	elements, ok := root.([]any)
	if !ok {
		return nil, &InputShapeError{Field: "$", Reason: fmt.Sprintf("expected a JSON array, got %s", jsonKind(root))}
	}
	return elements, nil
}

// parsePair builds an ExtensionUnit from a header element and a payload
// element. block is the one-based pair number, or zero for single-block
// input.
func parsePair(headerElement, payloadElement any, block int, limits Limits) (*ExtensionUnit, error) {
	headerObject, ok := headerElement.(map[string]any)
	if !ok {
		return nil, &InputShapeError{Block: block, Field: "[0]", Reason: fmt.Sprintf("expected an object, got %s", jsonKind(headerElement))}
	}
	payloadObject, ok := payloadElement.(map[string]any)
	if !ok {
		return nil, &InputShapeError{Block: block, Field: "[1]", Reason: fmt.Sprintf("expected an object, got %s", jsonKind(payloadElement))}
	}

	tag, err := extractTag(headerObject["type"])
	if err != nil {
		return nil, withBlock(err, block)
	}

	buffer, ok := headerObject["buffer"].(map[string]any)
	if !ok {
		return nil, &InputShapeError{Block: block, Field: "buffer", Reason: fmt.Sprintf("expected an object, got %s", jsonKind(headerObject["buffer"]))}
	}
	header, err := extractBytes(buffer["data"], "buffer.data")
	if err != nil {
		return nil, withBlock(err, block)
	}

	payload, err := extractBytes(payloadObject["data"], "data")
	if err != nil {
		return nil, withBlock(err, block)
	}

	unit, err := NewExtensionUnit(tag, header, payload, limits)
	if err != nil {
		return nil, withBlock(err, block)
	}
	return unit, nil
}

// extractTag reads the extension type code. Values that do not fit a
// byte are reported as unsupported types rather than truncated.
func extractTag(value any) (uint8, error) {
	number, ok := value.(json.Number)
	if !ok {
		return 0, &InputShapeError{Field: "type", Reason: fmt.Sprintf("expected an integer, got %s", jsonKind(value))}
	}
	tag, err := number.Int64()
	if err != nil {
		return 0, &InputShapeError{Field: "type", Reason: fmt.Sprintf("expected an integer, got %s", number)}
	}
	if tag != int64(TypeLZ4BlockArray) {
		return 0, &InputShapeError{
			Field:  "type",
			Reason: fmt.Sprintf("unsupported extension type %d (want %d)", tag, TypeLZ4BlockArray),
		}
	}
	return uint8(tag), nil
}

// extractBytes converts a JSON array of integers in 0-255 to bytes.
func extractBytes(value any, field string) ([]byte, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, &InputShapeError{Field: field, Reason: fmt.Sprintf("expected an array of bytes, got %s", jsonKind(value))}
	}

	result := make([]byte, len(items))
	for index, item := range items {
		number, ok := item.(json.Number)
		if !ok {
			return nil, &InputShapeError{
				Field:  fmt.Sprintf("%s[%d]", field, index),
				Reason: fmt.Sprintf("expected an integer, got %s", jsonKind(item)),
			}
		}
		byteValue, err := number.Int64()
		if err != nil || byteValue < 0 || byteValue > 255 {
			return nil, &InputShapeError{
				Field:  fmt.Sprintf("%s[%d]", field, index),
				Reason: fmt.Sprintf("value %s is not a byte (0-255)", number),
			}
		}
		result[index] = byte(byteValue)
	}
	return result, nil
}

// withBlock stamps the pair number onto an InputShapeError.
func withBlock(err error, block int) error {
	var shapeError *InputShapeError
	if errors.As(err, &shapeError) {
		shapeError.Block = block
	}
	return err
}

// jsonKind names the JSON type of a value decoded with UseNumber.
func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
