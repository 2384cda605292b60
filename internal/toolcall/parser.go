package toolcall

import (
	"encoding/json"
	"strings"
)

// Request is a decoded tool invocation extracted from model output text.
// It lives for a single loop iteration and is never persisted.
type Request struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// Parse scans model output for the first JSON object span containing a
// "tool" key. Strict decoding is attempted first; on failure the span is
// run through Repair once and decoded again. Text with no recognizable
// tool call (including unrecoverably malformed calls) is treated as a
// final natural-language answer and reported as not recognized.
func Parse(text string) (*Request, bool) {
	text = stripCodeFence(text)

	offset := 0
	for {
		rel := strings.IndexByte(text[offset:], '{')
		if rel < 0 {
			return nil, false
		}
		start := offset + rel

		end := findObjectEnd(text, start)
		if end < 0 {
			offset = start + 1
			continue
		}

		if req, ok := decode(text[start:end]); ok {
			return req, true
		}

		offset = start + 1
	}
}

func decode(span string) (*Request, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		repaired := Repair(span)
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return nil, false
		}
	}

	rawTool, ok := raw["tool"]
	if !ok {
		return nil, false
	}

	var name string
	if err := json.Unmarshal(rawTool, &name); err != nil || strings.TrimSpace(name) == "" {
		return nil, false
	}

	params := map[string]interface{}{}
	if rawParams, ok := raw["params"]; ok {
		if err := json.Unmarshal(rawParams, &params); err != nil {
			// Repaired span already decoded as an object, so params that is
			// not an object degrades to an empty mapping.
			params = map[string]interface{}{}
		}
	}

	return &Request{Tool: strings.TrimSpace(name), Params: params}, true
}

// findObjectEnd returns the index just past the balanced closing brace for
// the object starting at start, or -1 if the braces never balance. The scan
// is string-aware so braces inside quoted values do not count.
func findObjectEnd(s string, start int) int {
	depth := 0
	inStr := false
	var quote byte
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				inStr = false
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inStr = true
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) >= 3 && strings.HasPrefix(lines[len(lines)-1], "```") {
		return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return text
}
