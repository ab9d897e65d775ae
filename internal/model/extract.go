package model

import "strings"

// ExtractCode strips a markdown code fence from a completion, returning
// the fenced body when one is present and the trimmed text otherwise.
// Models frequently wrap code in ```python fences even when asked for
// bare source.
func ExtractCode(completion string) string {
	if body, ok := fencedBody(completion, "```python"); ok {
		return body
	}
	if body, ok := fencedBody(completion, "```"); ok {
		return body
	}
	return strings.TrimSpace(completion)
}

func fencedBody(text, opener string) (string, bool) {
	start := strings.Index(text, opener)
	if start == -1 {
		return "", false
	}
	rest := text[start+len(opener):]
	// An unclosed fence still means everything after the opener is code.
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}
