package llm

import "strings"

// CleanJSONBlock removes markdown code fences and conversational preamble
// from a model response, leaving the JSON document.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))
	i := strings.IndexAny(text, "{[")
	if i < 0 {
		return text
	}
	candidate := text[i:]
	var doc string
	if candidate[0] == '{' {
		doc = extractJSONObject(candidate)
	} else {
		doc = extractJSONArray(candidate)
	}
	if doc == "" {
		return text
	}
	return doc
}

// stripCodeFence unwraps ```json ... ``` or ```lang ... ``` blocks
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the opening line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// extractBalanced returns the prefix of s that closes the bracket s starts with.
// Brackets inside string literals are ignored.
func extractBalanced(s string, open, close byte) string {
	if s == "" || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
