package llm

import "strings"

// ExtractJSON pulls a JSON object out of an LLM response. Models wrap JSON
// in markdown fences or prose despite instructions, so fenced blocks are
// tried first, then the outermost brace pair.
func ExtractJSON(content string) string {
	if body := extractFromCodeBlock(content, "```json", "```"); body != "" {
		return body
	}
	if body := extractFromCodeBlock(content, "```", "```"); body != "" {
		return body
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(content[start : end+1])
	}

	return strings.TrimSpace(content)
}

func extractFromCodeBlock(content, startMarker, endMarker string) string {
	startIdx := strings.Index(content, startMarker)
	if startIdx == -1 {
		return ""
	}

	contentStart := startIdx + len(startMarker)
	// Skip newline after marker
	if contentStart < len(content) && content[contentStart] == '\n' {
		contentStart++
	}

	endIdx := strings.Index(content[contentStart:], endMarker)
	if endIdx == -1 {
		return ""
	}

	return strings.TrimSpace(content[contentStart : contentStart+endIdx])
}
