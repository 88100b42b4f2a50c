package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyOutput indicates the model produced nothing at all.
	ErrEmptyOutput = errors.New("model output is empty")

	// ErrNoArray indicates no JSON array could be located in the output.
	ErrNoArray = errors.New("no JSON array found in model output")
)

// ParseArray extracts the question array from raw model output. Models
// routinely wrap valid JSON in prose and markdown fences, so the parser
// strips one fence and slices from the first '[' to the last ']'. The
// slice itself must be strict JSON; a genuinely malformed array is a
// hard failure, not something to repair.
func ParseArray(raw string) ([]json.RawMessage, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrEmptyOutput
	}

	s = stripFence(s)

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end < start {
		return nil, ErrNoArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(s[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("parse question array: %w", err)
	}
	return items, nil
}

// stripFence removes one leading and one trailing markdown code fence,
// tolerating a language tag on the opening fence.
func stripFence(s string) string {
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
