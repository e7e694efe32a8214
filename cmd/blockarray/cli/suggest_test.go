// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"decode", "decdoe", 2},
		{"format", "formt", 1},
		{"strategies", "stratgies", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if reverse := levenshtein(test.b, test.a); reverse != got {
				t.Errorf("levenshtein(%q, %q) = %d, not symmetric with %d", test.b, test.a, reverse, got)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "decode"},
		{Name: "strategies"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"decod", "decode"},
		{"verison", "version"},
		{"strategy", "strategies"},
		{"xyzzy", ""},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := suggestCommand(test.input, commands); got != test.want {
				t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
		flagSet.StringP("format", "f", "json", "")
		flagSet.BoolP("envelope", "e", false, "")
		flagSet.Bool("strict", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "long typo", args: []string{"--fromat", "hex"}, want: "--format"},
		{name: "with value", args: []string{"--stirct=true"}, want: "--strict"},
		{name: "skips defined", args: []string{"-f", "hex", "--envelop"}, want: "--envelope"},
		{name: "nothing close", args: []string{"--completely-unrelated"}, want: ""},
		{name: "positional only", args: []string{"block.json"}, want: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, newFlagSet()); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
