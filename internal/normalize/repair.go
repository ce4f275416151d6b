package normalize

import (
	"regexp"
	"strings"
)

// fencePattern matches markdown code fence markers with an optional json tag.
var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// stripFences removes every markdown fence marker and surrounding whitespace.
func stripFences(s string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(s, ""))
}

// extractArray returns the slice of s from the first '[' to the last ']',
// inclusive. It reports false when either bracket is missing or the last ']'
// precedes the first '['.
func extractArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// extractObject is the object counterpart of extractArray.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// repairSyntax fixes separator mistakes outside of string literals:
// a comma before '}' or ']' is dropped, and a comma is inserted between
// adjacent "}{" and "][" pairs. Only the byte immediately following is
// considered, so separators split by whitespace are left alone.
func repairSyntax(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var lx lexer
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !lx.step(c) {
			b.WriteByte(c)
			continue
		}

		var next byte
		if i+1 < len(s) {
			next = s[i+1]
		}
		switch {
		case c == ',' && (next == '}' || next == ']'):
			continue
		case c == '}' && next == '{', c == ']' && next == '[':
			b.WriteByte(c)
			b.WriteByte(',')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// balanceBrackets appends one ']' for every structural '[' left unclosed.
// Brackets inside string literals are not counted.
func balanceBrackets(s string) string {
	var lx lexer
	opens, closes := 0, 0
	for i := 0; i < len(s); i++ {
		if !lx.step(s[i]) {
			continue
		}
		switch s[i] {
		case '[':
			opens++
		case ']':
			closes++
		}
	}
	if opens <= closes {
		return s
	}
	return s + strings.Repeat("]", opens-closes)
}
