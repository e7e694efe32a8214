// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewCommandLogger_JSONWhenNotTerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, nil)
	logger.Info("block decoded", "strategy", "raw")

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buffer.String())
	}
	if record["msg"] != "block decoded" || record["strategy"] != "raw" {
		t.Errorf("record = %v, want msg and strategy attributes", record)
	}
}

func TestNewCommandLogger_LevelVar(t *testing.T) {
	var buffer bytes.Buffer
	level := new(slog.LevelVar)
	logger := NewCommandLogger(&buffer, level)

	logger.Debug("hidden")
	if buffer.Len() != 0 {
		t.Fatalf("debug record written at info level: %s", buffer.String())
	}

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	if !strings.Contains(buffer.String(), "shown") {
		t.Errorf("debug record missing after lowering level: %q", buffer.String())
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(bytes.Buffer) = true, want false")
	}
}
