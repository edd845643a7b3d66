package inference

import "strings"

// ExtractJSON strips markdown code fences around a model response so the
// remainder can be passed to json.Unmarshal. Models frequently wrap JSON
// in ```json fences even when told not to.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	// Some responses prepend prose before the document. Cut to the
	// outermost JSON value when one is present.
	if start := strings.IndexAny(s, "{["); start > 0 {
		open := s[start]
		close := byte('}')
		if open == '[' {
			close = ']'
		}
		if end := strings.LastIndexByte(s, close); end > start {
			return s[start : end+1]
		}
	}

	return s
}
