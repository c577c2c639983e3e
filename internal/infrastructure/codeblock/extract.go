// Package codeblock strips markdown code fences from model output.
package codeblock

import "strings"

const fence = "```"

// Extract removes a surrounding triple-backtick fence and a leading language
// tag from raw model output. Unfenced text is returned unchanged on the
// assumption that the whole response is code. This is a heuristic, not a
// markdown parser: only a single outer fence is handled.
func Extract(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, fence) || !strings.HasSuffix(trimmed, fence) || len(trimmed) < 2*len(fence) {
		return raw
	}

	body := strings.Trim(trimmed, "`")
	return stripLanguageTag(body)
}

// stripLanguageTag drops a leading language token such as "python" or "html"
// when it sits on the opening fence line.
func stripLanguageTag(body string) string {
	head := body
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		head = body[:idx]
	}
	if tag := strings.TrimSpace(head); tag != "" && isLanguageToken(tag) {
		return body[len(head):]
	}
	return body
}

func isLanguageToken(tag string) bool {
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '-', r == '#':
		default:
			return false
		}
	}
	return true
}
