// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/blockarray/lib/blockarray"
	"github.com/bureau-foundation/blockarray/lib/decompress"
	"github.com/bureau-foundation/blockarray/lib/render"
	"github.com/bureau-foundation/blockarray/lib/testutil"
)

// statusPayload is {"status": 400} in MessagePack.
var statusPayload = []byte{0x81, 0xa6, 's', 't', 'a', 't', 'u', 's', 0xcd, 0x01, 0x90}

func compressedPair(t *testing.T, value any) testutil.Pair {
	t.Helper()
	raw := testutil.MessagePack(t, value)
	return testutil.Pair{Tag: 98, Header: testutil.SizeHeader(len(raw)), Payload: testutil.CompressBlock(t, raw)}
}

func TestProcessJSON_RawPayload(t *testing.T) {
	input := []byte(`[
		{"buffer": {"type": "Buffer", "data": [204, 184]}, "type": 98},
		{"type": "Buffer", "data": [129, 166, 115, 116, 97, 116, 117, 115, 205, 1, 144]}
	]`)

	artifact, err := New(Options{}).ProcessJSON(input, render.FormatHuman, render.Options{})
	if err != nil {
		t.Fatalf("ProcessJSON: %v", err)
	}
	if !artifact.Success() {
		t.Errorf("status = %v, want decoded", artifact.Status)
	}
	if !strings.Contains(artifact.Text(), `"status": 400`) {
		t.Errorf("output missing \"status\": 400:\n%s", artifact.Text())
	}
}

func TestProcessJSON_Compressed(t *testing.T) {
	value := map[string]any{
		"title":  "One or more validation errors occurred.",
		"status": 400,
		"errors": map[string]any{"Email": []string{"The Email field is not a valid e-mail address."}},
	}
	input := testutil.EnvelopeJSON(t, compressedPair(t, value))

	artifact, err := New(Options{}).ProcessJSON(input, render.FormatJSON, render.Options{})
	if err != nil {
		t.Fatalf("ProcessJSON: %v", err)
	}

	var object map[string]any
	if err := json.Unmarshal(artifact.Data, &object); err != nil {
		t.Fatalf("json output: %v", err)
	}
	if object["strategy"] != decompress.StrategySizedBlock {
		t.Errorf("strategy = %v, want %s", object["strategy"], decompress.StrategySizedBlock)
	}
	if object["raw_hex"] != hex.EncodeToString(testutil.MessagePack(t, value)) {
		t.Errorf("raw_hex does not match the uncompressed MessagePack")
	}
	human, _ := object["human_readable"].(map[string]any)
	if human["title"] != "One or more validation errors occurred." {
		t.Errorf("human_readable.title = %v", human["title"])
	}
}

func TestProcessJSON_ShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "unsupported type", input: []byte(`[{"buffer": {"data": [204, 1]}, "type": 99}, {"data": [1]}]`)},
		{name: "byte out of range", input: []byte(`[{"buffer": {"data": [204, 1]}, "type": 98}, {"data": [999]}]`)},
		{name: "not JSON", input: []byte(`not json`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{}).ProcessJSON(tt.input, render.FormatJSON, render.Options{})
			var shapeError *blockarray.InputShapeError
			if !errors.As(err, &shapeError) {
				t.Errorf("error = %v, want *blockarray.InputShapeError", err)
			}
		})
	}
}

func TestProcessJSON_PayloadLimit(t *testing.T) {
	input := testutil.EnvelopeJSON(t, testutil.Pair{Tag: 98, Header: []byte{0xcc, 1}, Payload: make([]byte, 64)})
	processor := New(Options{Limits: blockarray.Limits{MaxHeaderBytes: 16, MaxPayloadBytes: 32, MaxOutputBytes: 1024}})

	_, err := processor.ProcessJSON(input, render.FormatJSON, render.Options{})
	var shapeError *blockarray.InputShapeError
	if !errors.As(err, &shapeError) {
		t.Errorf("error = %v, want *blockarray.InputShapeError", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	processor := New(Options{})
	if processor.Limits() != blockarray.DefaultLimits() {
		t.Errorf("limits = %+v, want defaults", processor.Limits())
	}
	if processor.parallelism != 1 {
		t.Errorf("parallelism = %d, want 1", processor.parallelism)
	}
	if got := len(processor.Chain()); got != 4 {
		t.Errorf("chain has %d strategies, want 4", got)
	}
}

func TestRun_Logs(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	unit, err := blockarray.NewExtensionUnit(98, []byte{204, 184}, statusPayload, blockarray.DefaultLimits())
	if err != nil {
		t.Fatalf("NewExtensionUnit: %v", err)
	}
	New(Options{Logger: logger}).Run(unit)

	output := logs.String()
	for _, want := range []string{
		`msg="decompression strategy failed" strategy=sized-block`,
		`msg="block decoded" strategy=raw`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("logs missing %q:\n%s", want, output)
		}
	}
}

func TestProcessBatch(t *testing.T) {
	input := testutil.EnvelopeJSON(t,
		compressedPair(t, map[string]any{"block": 1}),
		testutil.Pair{Tag: 98, Header: []byte{204, 184}, Payload: statusPayload},
		testutil.Pair{Tag: 98, Header: []byte{0xce, 0xff, 0xff, 0xff, 0xff}, Payload: []byte{0xc1}},
	)

	artifact, err := New(Options{Parallelism: 2}).ProcessBatch(context.Background(), input, render.FormatJSON, render.Options{})
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if artifact.Status != render.StatusRawFallback {
		t.Errorf("status = %v, want the worst block status raw_fallback", artifact.Status)
	}

	var object struct {
		TotalBlocks int              `json:"total_blocks"`
		Blocks      []map[string]any `json:"blocks"`
	}
	if err := json.Unmarshal(artifact.Data, &object); err != nil {
		t.Fatalf("batch output: %v", err)
	}
	if object.TotalBlocks != 3 || len(object.Blocks) != 3 {
		t.Fatalf("total_blocks = %d with %d blocks, want 3", object.TotalBlocks, len(object.Blocks))
	}

	wantStatus := []string{"decoded", "decoded", "raw_fallback"}
	for index, block := range object.Blocks {
		if block["status"] != wantStatus[index] {
			t.Errorf("block %d status = %v, want %s", index+1, block["status"], wantStatus[index])
		}
	}
	if object.Blocks[2]["raw_hex"] != "c1" {
		t.Errorf("block 3 raw_hex = %v, want c1", object.Blocks[2]["raw_hex"])
	}
}

func TestProcessBatch_PreservesOrder(t *testing.T) {
	var pairs []testutil.Pair
	for index := range 20 {
		pairs = append(pairs, compressedPair(t, map[string]any{"index": index, "padding": strings.Repeat("p", index*10)}))
	}
	input := testutil.EnvelopeJSON(t, pairs...)

	artifact, err := New(Options{Parallelism: 4}).ProcessBatch(context.Background(), input, render.FormatHuman, render.Options{Compact: true})
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}

	var object struct {
		Blocks []struct {
			Index int `json:"index"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal(artifact.Data, &object); err != nil {
		t.Fatalf("batch output: %v", err)
	}
	for index, block := range object.Blocks {
		if block.Index != index {
			t.Errorf("blocks[%d].index = %d, want %d", index, block.Index, index)
		}
	}
	if !artifact.Success() {
		t.Errorf("status = %v, want decoded", artifact.Status)
	}
}

func TestProcessBatch_Hex(t *testing.T) {
	first := testutil.MessagePack(t, "one")
	second := testutil.MessagePack(t, "two")
	input := testutil.EnvelopeJSON(t,
		testutil.Pair{Tag: 98, Header: testutil.SizeHeader(len(first)), Payload: testutil.CompressBlock(t, first)},
		testutil.Pair{Tag: 98, Header: testutil.SizeHeader(len(second)), Payload: testutil.CompressBlock(t, second)},
	)

	artifact, err := New(Options{}).ProcessBatch(context.Background(), input, render.FormatHex, render.Options{})
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	want := fmt.Sprintf("%x\n%x", first, second)
	if artifact.Text() != want {
		t.Errorf("hex = %q, want %q", artifact.Text(), want)
	}

	binary, err := New(Options{}).ProcessBatch(context.Background(), input, render.FormatBinary, render.Options{})
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if !bytes.Equal(binary.Data, append(bytes.Clone(first), second...)) {
		t.Errorf("binary = %x, want %x%x", binary.Data, first, second)
	}
}

func TestProcessBatch_UnsupportedType(t *testing.T) {
	input := testutil.EnvelopeJSON(t,
		testutil.Pair{Tag: 98, Header: []byte{204, 184}, Payload: statusPayload},
		testutil.Pair{Tag: 99, Header: []byte{204, 184}, Payload: statusPayload},
	)

	_, err := New(Options{}).ProcessBatch(context.Background(), input, render.FormatJSON, render.Options{})
	var shapeError *blockarray.InputShapeError
	if !errors.As(err, &shapeError) {
		t.Fatalf("error = %v, want *blockarray.InputShapeError", err)
	}
	if shapeError.Block != 2 || !strings.Contains(err.Error(), "99") {
		t.Errorf("error = %v, want block 2 and type 99", err)
	}
}

func TestProcessBatch_Cancelled(t *testing.T) {
	input := testutil.EnvelopeJSON(t, testutil.Pair{Tag: 98, Header: []byte{204, 184}, Payload: statusPayload})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).ProcessBatch(ctx, input, render.FormatJSON, render.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
