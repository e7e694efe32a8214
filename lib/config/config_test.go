// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "blockarray.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Limits.MaxHeaderBytes != 16 {
		t.Errorf("expected max_header_bytes=16, got %d", cfg.Limits.MaxHeaderBytes)
	}
	if cfg.Limits.MaxPayloadBytes != 16<<20 {
		t.Errorf("expected max_payload_bytes=16MiB, got %s", cfg.Limits.MaxPayloadBytes)
	}
	if cfg.Limits.MaxOutputBytes != 64<<20 {
		t.Errorf("expected max_output_bytes=64MiB, got %s", cfg.Limits.MaxOutputBytes)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format=json, got %s", cfg.Output.Format)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("expected color=auto, got %s", cfg.Output.Color)
	}
	if cfg.Batch.Parallelism != 4 {
		t.Errorf("expected parallelism=4, got %d", cfg.Batch.Parallelism)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BLOCKARRAY_CONFIG not set, got nil")
	}

	expectedMsg := "BLOCKARRAY_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, writeConfig(t, "output:\n  format: human\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("expected format=human, got %s", cfg.Output.Format)
	}
	if cfg.Batch.Parallelism != 4 {
		t.Errorf("expected omitted parallelism to keep its default, got %d", cfg.Batch.Parallelism)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := writeConfig(t, `
limits:
  max_header_bytes: 8
  max_payload_bytes: 1MiB
  max_output_bytes: "4 MB"

output:
  format: hex
  compact: true
  color: never

log:
  level: debug

batch:
  parallelism: 16
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Limits.MaxHeaderBytes != 8 {
		t.Errorf("expected max_header_bytes=8, got %d", cfg.Limits.MaxHeaderBytes)
	}
	if cfg.Limits.MaxPayloadBytes != 1<<20 {
		t.Errorf("expected max_payload_bytes=1MiB, got %d", cfg.Limits.MaxPayloadBytes)
	}
	if cfg.Limits.MaxOutputBytes != 4_000_000 {
		t.Errorf("expected max_output_bytes=4000000, got %d", cfg.Limits.MaxOutputBytes)
	}
	if cfg.Output.Format != "hex" || !cfg.Output.Compact || cfg.Output.Color != "never" {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
	if cfg.Batch.Parallelism != 16 {
		t.Errorf("expected parallelism=16, got %d", cfg.Batch.Parallelism)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown key",
			content: "limits:\n  max_header_byte: 8\n",
			wantErr: "max_header_byte",
		},
		{
			name:    "bad byte size",
			content: "limits:\n  max_payload_bytes: lots\n",
			wantErr: "invalid byte size",
		},
		{
			name:    "byte size as mapping",
			content: "limits:\n  max_payload_bytes:\n    value: 1\n",
			wantErr: "expected a byte size",
		},
		{
			name:    "invalid format",
			content: "output:\n  format: yaml\n",
			wantErr: "output.format must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty config = %+v, want defaults", cfg)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Limits.MaxOutputBytes = 0
	cfg.Output.Color = "sometimes"
	cfg.Log.Level = "loud"
	cfg.Batch.Parallelism = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"limits.max_output_bytes", "output.color", "log.level", "batch.parallelism"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestResolve(t *testing.T) {
	envPath := writeConfig(t, "output:\n  format: human\n")
	flagPath := writeConfig(t, "output:\n  format: binary\n")

	t.Setenv(EnvironmentVariable, "")
	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve without sources: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected defaults without sources, got format=%s", cfg.Output.Format)
	}

	t.Setenv(EnvironmentVariable, envPath)
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve from environment: %v", err)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("expected environment config, got format=%s", cfg.Output.Format)
	}

	cfg, err = Resolve(flagPath)
	if err != nil {
		t.Fatalf("Resolve from flag: %v", err)
	}
	if cfg.Output.Format != "binary" {
		t.Errorf("expected the explicit path to win, got format=%s", cfg.Output.Format)
	}
}

func TestByteSizeString(t *testing.T) {
	if got := ByteSize(16 << 20).String(); got != "16 MiB" {
		t.Errorf("ByteSize(16MiB).String() = %q, want \"16 MiB\"", got)
	}
}
