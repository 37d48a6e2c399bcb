package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"Full_Name\": \"Jane\"}\n```",
			expected: `{"Full_Name": "Jane"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"Full_Name\": \"Jane\"}\n```",
			expected: `{"Full_Name": "Jane"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"Full_Name": "Jane"}`,
			expected: `{"Full_Name": "Jane"}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the parsed resume:\n{\"Location\": \"Berlin\"}",
			expected: `{"Location": "Berlin"}`,
		},
		{
			name:     "preamble before array",
			input:    "Roles:\n[\"SRE\", \"Backend Engineer\"]",
			expected: `["SRE", "Backend Engineer"]`,
		},
		{
			name:     "trailing chatter",
			input:    "{\"Certifications\": []}\n\nLet me know if you need anything else!",
			expected: `{"Certifications": []}`,
		},
		{
			name:     "escaped quotes",
			input:    "Result: {\"Description\": \"Built a \\\"fast\\\" parser\"}",
			expected: `{"Description": "Built a \"fast\" parser"}`,
		},
		{
			name:     "no JSON at all",
			input:    "Sorry, I cannot read this resume.",
			expected: "Sorry, I cannot read this resume.",
		},
		{
			name:     "unbalanced object left as is",
			input:    `{"Full_Name": "Jane"`,
			expected: `{"Full_Name": "Jane"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nested", `{"Skills": {"Technical": ["Go"]}}`, `{"Skills": {"Technical": ["Go"]}}`},
		{"trailing text", `{"a": 1} more`, `{"a": 1}`},
		{"braces in string", `{"Description": "uses {templates}"}`, `{"Description": "uses {templates}"}`},
		{"empty", "", ""},
		{"not an object", "resume", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[{"start_date": "01/2020"}]`, extractJSONArray(`[{"start_date": "01/2020"}] trailing`))
	assert.Equal(t, `[[1], [2]]`, extractJSONArray(`[[1], [2]]`))
	assert.Equal(t, "", extractJSONArray(`{"a": []}`))
	assert.Equal(t, "", extractJSONArray(`["open"`))
}
