package ordering

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/abhisek/quizdrill/internal/jsonx"
	"github.com/abhisek/quizdrill/internal/llm"
)

// quotedString matches one JSON string literal.
var quotedString = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// extractOrderedIDs pulls a best-effort ordered-id list from loosely
// formatted or truncated model output. Strict parse of the first balanced
// JSON block is attempted first; failing that, the quoted strings following
// the orderedIds field are collected as-is.
func extractOrderedIDs(text string) []string {
	cleaned := jsonx.StripFences(text)

	if block, ok := jsonx.FirstJSONBlock(cleaned); ok {
		var out orderOutput
		if err := json.Unmarshal([]byte(block), &out); err == nil && len(out.OrderedIDs) > 0 {
			return out.OrderedIDs
		}
	}

	field := strings.Index(cleaned, `"orderedIds"`)
	if field < 0 {
		return nil
	}
	tail := cleaned[field+len(`"orderedIds"`):]
	// Stop at the next field so reasoning text is not mistaken for ids.
	if end := strings.Index(tail, `"reasoning"`); end >= 0 {
		tail = tail[:end]
	}

	var ids []string
	for _, m := range quotedString.FindAllStringSubmatch(tail, -1) {
		if m[1] != "" {
			ids = append(ids, m[1])
		}
	}
	return ids
}

// salvageableContent returns the raw content carried by errors that still
// hold partial model output.
func salvageableContent(err error) (json.RawMessage, bool) {
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) && len(invalid.Content) > 0 {
		return invalid.Content, true
	}
	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &truncated) && len(truncated.Content) > 0 {
		return truncated.Content, true
	}
	return nil, false
}
