package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the first top-level JSON object or array out of
// free-form model output. The match is greedy: from the first `{` or `[`
// through the last matching closer, so `noise {"a":1} trailing` yields
// {"a":1}. When no bracket is present the entire text is parsed as-is.
func ExtractJSON(text string) (any, error) {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start := -1
	var closer byte
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start, closer = objStart, '}'
	case arrStart >= 0:
		start, closer = arrStart, ']'
	}

	candidate := text
	if start >= 0 {
		if end := strings.LastIndexByte(text, closer); end > start {
			candidate = text[start : end+1]
		}
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return parsed, nil
}
