// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance that still produces a
// suggestion. Three catches transpositions plus a dropped or extra
// character.
const maxSuggestDistance = 3

// suggestCommand returns the name of the closest matching subcommand to
// the unknown input, or "" if nothing is close enough.
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for index, command := range commands {
		names[index] = command.Name
	}
	return closest(unknown, names)
}

// suggestFlag finds the first unrecognized flag in args and returns the
// closest defined flag, formatted with its prefix (-- or -). Returns ""
// if no good suggestion exists.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
		if f.Shorthand != "" {
			defined = append(defined, f.Shorthand)
		}
	})

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		if isDefinedFlag(arg, name, flagSet) {
			continue
		}

		best := closest(name, defined)
		if best == "" {
			// Only the first unrecognized flag is considered.
			return ""
		}
		if len(best) == 1 {
			return "-" + best
		}
		return "--" + best
	}

	return ""
}

// closest returns the candidate with the smallest edit distance to
// input, or "" when none is within maxSuggestDistance. Ties go to the
// earlier candidate.
func closest(input string, candidates []string) string {
	bestName := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		distance := levenshtein(input, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// isDefinedFlag reports whether arg names a flag in flagSet. A single
// dash introduces shorthands, optionally followed by a value ("-fhex"),
// so only its first character is checked.
func isDefinedFlag(arg, name string, flagSet *pflag.FlagSet) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(arg, "--") {
		return flagSet.Lookup(name) != nil
	}
	return flagSet.ShorthandLookup(name[:1]) != nil
}

// levenshtein computes the edit distance between two strings: the
// minimum number of single-byte insertions, deletions, or
// substitutions turning one into the other.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// One row of the distance matrix, sized by the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous, current = current, previous
	}

	return previous[len(a)]
}
