package service

import (
	"context"
	"log"
	"strings"
)

// Rejection message categories and their prompts/fallbacks. Generation
// failure is non-fatal: the static fallback is returned instead.

const invalidFormatPrompt = "The user query provided is not in a valid format. " +
	"Analyze the input and generate a helpful response explaining why the format is invalid. " +
	"Provide specific feedback on how to correct the query and examples of valid queries such as: " +
	"'Show me properties listed in San Francisco under $700,000.' or 'Find 3-bedroom homes in Austin.'"

const invalidFormatFallback = "Your query is not in a valid format. Please ensure your question is written in natural language, such as: " +
	"'Show me properties listed in San Francisco under $700,000.' or 'Find 3-bedroom homes in Austin.'"

const refinementPrompt = "The user's query is ambiguous or too broad. " +
	"Generate a helpful response explaining why their query needs refinement and provide an example of a more specific query based on their input. " +
	"Suggestions should look like: 'Can you give me properties in x location with x bedrooms and x bathrooms?'"

const refinementFallback = "Your query is too broad or ambiguous. Please specify additional details, " +
	"such as location, price range, or property type, and try again."

const nonRealEstatePrompt = "The user's query is not related to real estate. " +
	"Generate a helpful response explaining why their query cannot be processed. " +
	"Provide an example of valid real-estate-related queries, such as listing properties by location, " +
	"price range, or property type."

const nonRealEstateFallback = "Your query does not appear to be related to real estate. " +
	"Please ask a question about properties, such as listing properties by location, price range, or property type."

const complexityPrompt = "The user's query is unsupported or too complex for this system to handle. " +
	"Generate a helpful response explaining why their query cannot be processed and provide an example " +
	"of a simpler query that this system can handle, such as listing properties by location or price range."

const complexityFallback = "Your query is too complex or unsupported by this system. Please simplify your query. " +
	"For example, you can ask for a list of properties by location or price range."

// MessageGenerator produces the user-facing explanation for each rejection
// category.
type MessageGenerator struct {
	ai AIClient
}

// NewMessageGenerator creates a new message generator
func NewMessageGenerator(ai AIClient) *MessageGenerator {
	return &MessageGenerator{ai: ai}
}

// InvalidFormat explains an invalid input format.
func (m *MessageGenerator) InvalidFormat(ctx context.Context, userInput string) string {
	return m.generate(ctx, invalidFormatPrompt, userInput, invalidFormatFallback)
}

// Refinement explains how to refine an ambiguous query.
func (m *MessageGenerator) Refinement(ctx context.Context, userInput string) string {
	return m.generate(ctx, refinementPrompt, userInput, refinementFallback)
}

// NonRealEstate explains that the query is off-topic for this system.
func (m *MessageGenerator) NonRealEstate(ctx context.Context, userInput string) string {
	return m.generate(ctx, nonRealEstatePrompt, userInput, nonRealEstateFallback)
}

// UnsupportedComplexity explains that the query is beyond what the system
// supports.
func (m *MessageGenerator) UnsupportedComplexity(ctx context.Context, userInput string) string {
	return m.generate(ctx, complexityPrompt, userInput, complexityFallback)
}

func (m *MessageGenerator) generate(ctx context.Context, systemPrompt, userInput, fallback string) string {
	resp, err := m.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userInput},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("Warning: rejection message generation failed, using fallback: %v", err)
		return fallback
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return fallback
	}
	return message
}
