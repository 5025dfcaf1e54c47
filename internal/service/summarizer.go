package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"core/internal/model"
)

const summaryInstructions = `PLEASE PROVIDE A HIGH-LEVEL SUMMARY OF THE FOLLOWING REAL ESTATE PROPERTY DATA.
ALSO PLEASE BE SURE TO ANSWER THE USERS QUESTION IN THE SUMMARY.

PAY ATTENTION TO THE DATA AND CONFIRM THE VALUE OF homestatus AND THEN PROCEED WITH THE FOLLOWING STEPS:

FORMAT THE SUMMARY AS FOLLOWS:
1. START WITH AN OVERVIEW:
   - Describe the real estate market, including the total number of properties and location. Mention if there is a variety of property types and any notable price ranges.

2. ORGANIZE BY PROPERTY TYPE (e.g., 'Single-Family Homes', 'Condos', 'Lots for Sale'):
   - For each property type, summarize:
     - The price range of properties within that type.
     - Any notable properties (e.g., the most expensive, highest engagement).
     - Key features (e.g., number of bedrooms, age of construction).
     - Include trends such as average view count or favorites if applicable.

3. PROVIDE AN ENDING INSIGHT:
   - Comment on the overall interest level, indicated by metrics like page views and favorites.

MAKE SURE TO:
- Keep the language concise and easy to understand.
- Use bold text for headings like property types and notable details.
- Avoid listing out every property individually unless they are significant.
- Maintain readability with short, informative sentences.

IMPORTANT:
- When summarizing prices use \$ so they render properly on the UI.
- Avoid placing numbers directly next to each other without spacing or punctuation.
- Use Markdown format properly, ensuring no words or numbers get concatenated together.`

// NoResultsSummary is the canned guidance returned when the retrieval step
// matches zero properties; the summarizer is not invoked in that case.
const NoResultsSummary = `### No Properties Found

Your query did not match any properties in our database. Try refining your search with:
- A different city or location.
- Adjusting the price range.
- Specifying the number of bedrooms or bathrooms.

**Example queries:**
- "Show me properties listed in San Francisco under $700,000."
- "Find homes with 3 bedrooms in Austin."`

// Summarizer produces a natural-language summary of retrieved properties.
type Summarizer struct {
	ai AIClient
}

// NewSummarizer creates a new summarizer
func NewSummarizer(ai AIClient) *Summarizer {
	return &Summarizer{ai: ai}
}

// Summarize answers the user's question over the retrieved properties.
// Failure is non-fatal: an empty string is returned and the caller still
// serves the properties.
func (s *Summarizer) Summarize(ctx context.Context, results []model.PropertyResult, userInput string) string {
	data, err := json.Marshal(results)
	if err != nil {
		log.Printf("Warning: failed to encode results for summarization: %v", err)
		return ""
	}

	resp, err := s.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: summaryInstructions},
			{Role: "user", Content: userInput},
			{Role: "user", Content: string(data)},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("Warning: summary generation failed: %v", err)
		return ""
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
