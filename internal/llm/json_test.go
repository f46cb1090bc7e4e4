package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare json object",
			content: `{"is_scam": true, "confidence": 0.9}`,
			want:    `{"is_scam": true, "confidence": 0.9}`,
		},
		{
			name: "json fenced block",
			content: "```json\n" + `{"is_scam": false}` + "\n```",
			want: `{"is_scam": false}`,
		},
		{
			name: "plain fenced block",
			content: "```\n" + `{"confidence": 0.5}` + "\n```",
			want: `{"confidence": 0.5}`,
		},
		{
			name:    "object buried in prose",
			content: `Sure, here is the analysis: {"is_scam": true} Hope that helps!`,
			want:    `{"is_scam": true}`,
		},
		{
			name:    "surrounding whitespace",
			content: "\n\n  {\"a\": 1}  \n",
			want:    `{"a": 1}`,
		},
		{
			name:    "no json at all",
			content: "I cannot answer that.",
			want:    "I cannot answer that.",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.content); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
