package cacheinfra

import "strings"

// literalRuns splits a glob pattern into its literal segments, dropping
// wildcards and character classes. Class contents are alternatives, not
// literals, so they contribute nothing.
func literalRuns(pattern string) []string {
	var runs []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			runs = append(runs, b.String())
			b.Reset()
		}
	}

	inClass := false
	for _, r := range pattern {
		switch {
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
			flush()
		case r == '*' || r == '?':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return runs
}

// matchesLiteralRuns reports whether every literal segment of the pattern
// appears in key, in pattern order. This is the in-process approximation of
// glob matching: segments are found by containment without anchoring, so a
// pattern like "a*b" also matches "xa-b-y". For the anchored invalidation
// patterns this codebase emits the result agrees with true glob matching.
func matchesLiteralRuns(key string, runs []string) bool {
	pos := 0
	for _, run := range runs {
		idx := strings.Index(key[pos:], run)
		if idx < 0 {
			return false
		}
		pos += idx + len(run)
	}
	return true
}
