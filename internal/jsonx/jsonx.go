// Package jsonx extracts JSON documents from loosely formatted model output.
package jsonx

import "strings"

// StripFences removes a surrounding markdown code fence, with or without a
// language tag. Text without a fence is returned trimmed.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop a language tag like "json" on the fence line.
		first := strings.TrimSpace(s[:nl])
		if !strings.ContainsAny(first, "{}[]") {
			s = s[nl+1:]
		}
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// FirstJSONBlock returns the first balanced JSON object or array in text,
// skipping any prose around it. Braces inside string literals are ignored.
// ok is false when no balanced block exists.
func FirstJSONBlock(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}
	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
