package utils

import (
	"testing"
)

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"city": "Austin", "bedrooms": 3}`,
			want: map[string]interface{}{
				"city":     "Austin",
				"bedrooms": float64(3),
			},
			wantErr: false,
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"state": "TX", "price": 400000}` + "\n```",
			want: map[string]interface{}{
				"state": "TX",
				"price": float64(400000),
			},
			wantErr: false,
		},
		{
			name:  "JSON with surrounding text",
			input: `Here is the result: {"status": "success", "count": 5} and that's it.`,
			want: map[string]interface{}{
				"status": "success",
				"count":  float64(5),
			},
			wantErr: false,
		},
		{
			name:  "JSON with trailing comma",
			input: `{"city": "Dallas", "bedrooms": 4,}`,
			want: map[string]interface{}{
				"city":     "Dallas",
				"bedrooms": float64(4),
			},
			wantErr: false,
		},
		{
			name:  "JSON with unquoted keys",
			input: `{city: "Houston", bedrooms: 2}`,
			want: map[string]interface{}{
				"city":     "Houston",
				"bedrooms": float64(2),
			},
			wantErr: false,
		},
		{
			name:    "Empty string",
			input:   "",
			want:    nil,
			wantErr: true,
		},
		{
			name:    "Invalid JSON",
			input:   "not json at all",
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAIJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if len(got) != len(tt.want) {
					t.Errorf("ParseAIJSON() got = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestExtractFromMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "JSON code block with json tag",
			input: "```json\n{\"ambiguous\": true}\n```",
			want:  `{"ambiguous": true}`,
		},
		{
			name:  "JSON code block without tag",
			input: "```\n{\"ambiguous\": true}\n```",
			want:  `{"ambiguous": true}`,
		},
		{
			name:  "No code block",
			input: `{"ambiguous": true}`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractFromMarkdown(tt.input)
			if got != tt.want {
				t.Errorf("extractFromMarkdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBalancedBraces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  rune
		close rune
		want  string
	}{
		{
			name:  "Simple object",
			input: `{"a": 1}`,
			open:  '{',
			close: '}',
			want:  `{"a": 1}`,
		},
		{
			name:  "Nested objects",
			input: `{"price": {"value": 2, "operator": "lte"}}`,
			open:  '{',
			close: '}',
			want:  `{"price": {"value": 2, "operator": "lte"}}`,
		},
		{
			name:  "Object with string containing braces",
			input: `{"text": "Hello {world}"}`,
			open:  '{',
			close: '}',
			want:  `{"text": "Hello {world}"}`,
		},
		{
			name:  "Array",
			input: `[1, 2, 3]`,
			open:  '[',
			close: ']',
			want:  `[1, 2, 3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractBalancedBraces(tt.input, tt.open, tt.close)
			if got != tt.want {
				t.Errorf("extractBalancedBraces() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "Valid object",
			input: `{"test": true}`,
			want:  true,
		},
		{
			name:  "Valid array",
			input: `[1, 2, 3]`,
			want:  true,
		},
		{
			name:  "Invalid JSON",
			input: `{test: true}`,
			want:  false,
		},
		{
			name:  "Empty string",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateJSON(tt.input)
			if got != tt.want {
				t.Errorf("ValidateJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}
