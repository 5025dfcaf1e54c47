package service

import (
	"context"
	"errors"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"plain true", "true", true},
		{"capitalized", "True", true},
		{"padded", "  true\n", true},
		{"plain false", "false", false},
		{"anything else is false", "the query looks valid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeAI{replies: []string{tt.reply}}
			got, err := NewQueryValidator(ai).ValidateFormat(context.Background(), "homes in Austin")
			if err != nil {
				t.Fatalf("ValidateFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ValidateFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateFormat_Error(t *testing.T) {
	ai := &fakeAI{chatErr: errors.New("upstream timeout")}
	_, err := NewQueryValidator(ai).ValidateFormat(context.Background(), "homes in Austin")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		ambiguous   bool
		realEstate  bool
		complexity  bool
	}{
		{
			name:       "clean query",
			reply:      `{"ambiguous": false, "real_estate_related": true, "unsupported_complexity": false}`,
			realEstate: true,
		},
		{
			name:      "ambiguous query",
			reply:     `{"ambiguous": true, "real_estate_related": true, "unsupported_complexity": false}`,
			ambiguous: true, realEstate: true,
		},
		{
			name:       "markdown wrapped verdict",
			reply:      "```json\n{\"ambiguous\": false, \"real_estate_related\": true, \"unsupported_complexity\": true}\n```",
			realEstate: true, complexity: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeAI{replies: []string{tt.reply}}
			verdict, err := NewQueryValidator(ai).Classify(context.Background(), "homes in Austin")
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if verdict.Ambiguous != tt.ambiguous {
				t.Errorf("Ambiguous = %v, want %v", verdict.Ambiguous, tt.ambiguous)
			}
			if verdict.RealEstateRelated != tt.realEstate {
				t.Errorf("RealEstateRelated = %v, want %v", verdict.RealEstateRelated, tt.realEstate)
			}
			if verdict.UnsupportedComplexity != tt.complexity {
				t.Errorf("UnsupportedComplexity = %v, want %v", verdict.UnsupportedComplexity, tt.complexity)
			}
		})
	}
}

func TestClassify_UnparseableVerdict(t *testing.T) {
	ai := &fakeAI{replies: []string{"this is not json"}}
	_, err := NewQueryValidator(ai).Classify(context.Background(), "homes in Austin")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
