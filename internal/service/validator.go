package service

import (
	"context"
	"fmt"
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

const formatSystemPrompt = "Evaluate the following query and determine if it is a valid natural-language question " +
	"about real estate or property listings. Respond with 'true' if it is valid, or 'false' if it is invalid."

const classifySystemPrompt = "Evaluate the following query for three things: " +
	"1. Is it ambiguous or unclear? " +
	"2. Is it related to real estate? " +
	"3. Does it ask for investor-specific insights, property comparisons, or involve unsupported complexity? " +
	"Respond strictly with a valid JSON object with boolean keys " +
	`"ambiguous", "real_estate_related" and "unsupported_complexity".`

// QueryValidator runs the AI-backed format and classification checks that
// gate the pipeline before extraction.
type QueryValidator struct {
	ai AIClient
}

// NewQueryValidator creates a new query validator
func NewQueryValidator(ai AIClient) *QueryValidator {
	return &QueryValidator{ai: ai}
}

// ValidateFormat asks the classifier whether the input is a well-formed
// natural-language property question.
func (v *QueryValidator) ValidateFormat(ctx context.Context, userInput string) (bool, error) {
	resp, err := v.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: formatSystemPrompt},
			{Role: "user", Content: userInput},
		},
	})
	if err != nil {
		return false, fmt.Errorf("%w: format check: %v", ErrValidation, err)
	}
	if len(resp.Choices) == 0 {
		return false, fmt.Errorf("%w: format check returned no choices", ErrValidation)
	}

	verdict := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	return verdict == "true", nil
}

// Classify returns the tri-flag validation verdict for the input.
func (v *QueryValidator) Classify(ctx context.Context, userInput string) (*model.ValidationVerdict, error) {
	resp, err := v.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: classifySystemPrompt},
			{Role: "user", Content: userInput},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: classification: %v", ErrValidation, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: classification returned no choices", ErrValidation)
	}

	var verdict model.ValidationVerdict
	if err := utils.ParseAIJSON(resp.Choices[0].Message.Content, &verdict); err != nil {
		return nil, fmt.Errorf("%w: classification: %v", ErrValidation, err)
	}

	return &verdict, nil
}
