package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

const extractionSystemPrompt = `You are a real estate search assistant. Extract property details from the user's query into JSON with comparison operators (e.g., 'at least' -> gte, 'up to' -> lte, exact -> eq).

The JSON object must contain exactly these keys:
- city: string. City of the property. Put "none" if not picked up from the user's request.
- state: string. State of the property, abbreviated (e.g. TX). Put "none" if not picked up.
- county: string. County of the property. Put "none" if not picked up.
- zipcode: string. Zip code of the property. Put "none" if not picked up.
- hometype: string. Type of the home (e.g., Single Family, Lot). Put "none" if not picked up.
- homestatus: string. Status of the home (For Sale, Recently Sold, Pending, For Rent, Pre Foreclosure, Foreclosed, Other). Put "none" if not picked up.
- datePosted: object {"value": "YYYY-MM-DD" or "none", "operator": "gte"|"lte"|"eq"}. Date the property was listed.
- dateSold: object {"value": "YYYY-MM-DD" or "none", "operator": "gte"|"lte"|"eq"}. Date the property was sold.
- price: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}. Asking price in USD.
- yearBuilt: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}.
- livingArea: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}. Living area in sqft.
- bathrooms: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}.
- bedrooms: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}.
- pageViewCount: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}.
- favoriteCount: object {"value": number or "none", "operator": "gte"|"lte"|"eq"}.

Required keys that must always be present: city, state, hometype, homestatus.

Important rules:
- Respond ONLY with valid JSON.
- For prices: "700k" = 700000, "1.2M" = 1200000.
- "under"/"below"/"at most" -> lte, "over"/"above"/"at least" -> gte.
- Put "none" for any value the user did not specify; never invent values.

Examples:
Query: "Find homes with 3 bedrooms in Austin under $400,000"
Response: {"city": "Austin", "state": "none", "county": "none", "zipcode": "none", "hometype": "none", "homestatus": "none", "datePosted": {"value": "none"}, "dateSold": {"value": "none"}, "price": {"value": 400000, "operator": "lte"}, "yearBuilt": {"value": "none"}, "livingArea": {"value": "none"}, "bathrooms": {"value": "none"}, "bedrooms": {"value": 3, "operator": "eq"}, "pageViewCount": {"value": "none"}, "favoriteCount": {"value": "none"}}`

// rawRange is the extraction-boundary shape of a range field. A missing
// "value" key is treated the same as the "none" sentinel.
type rawRange struct {
	Value    any     `json:"value"`
	Operator *string `json:"operator"`
}

// rawFields mirrors the extraction service's 15-field response, sentinel
// values included. It is coerced into model.StructuredFields before anything
// downstream sees it.
type rawFields struct {
	City       *string `json:"city"`
	State      *string `json:"state"`
	County     *string `json:"county"`
	Zipcode    *string `json:"zipcode"`
	HomeType   *string `json:"hometype"`
	HomeStatus *string `json:"homestatus"`

	DatePosted    *rawRange `json:"datePosted"`
	DateSold      *rawRange `json:"dateSold"`
	Price         *rawRange `json:"price"`
	YearBuilt     *rawRange `json:"yearBuilt"`
	LivingArea    *rawRange `json:"livingArea"`
	Bathrooms     *rawRange `json:"bathrooms"`
	Bedrooms      *rawRange `json:"bedrooms"`
	PageViewCount *rawRange `json:"pageViewCount"`
	FavoriteCount *rawRange `json:"favoriteCount"`
}

// FieldExtractor parses raw query text into the structured 15-field schema
// using the AI collaborator.
type FieldExtractor struct {
	ai AIClient
}

// NewFieldExtractor creates a new field extractor
func NewFieldExtractor(ai AIClient) *FieldExtractor {
	return &FieldExtractor{ai: ai}
}

// ExtractFields parses the user input into coerced StructuredFields.
// A collaborator error or an unparseable response is an extraction failure;
// missing fields are not (they coerce to absent values).
func (e *FieldExtractor) ExtractFields(ctx context.Context, userInput string) (*model.StructuredFields, error) {
	resp, err := e.ai.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: userInput},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrExtraction)
	}

	content := resp.Choices[0].Message.Content
	var raw rawFields
	if err := utils.ParseAIJSON(content, &raw); err != nil {
		log.Printf("Failed to parse extraction response, content: %s", content)
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return raw.coerce(), nil
}

// coerce maps the sentinel-laden boundary shape to the internal
// representation: absent scalars become empty strings, absent or valueless
// ranges become nil.
func (r *rawFields) coerce() *model.StructuredFields {
	return &model.StructuredFields{
		City:       coerceScalar(r.City),
		State:      coerceScalar(r.State),
		County:     coerceScalar(r.County),
		Zipcode:    coerceScalar(r.Zipcode),
		HomeType:   coerceScalar(r.HomeType),
		HomeStatus: coerceScalar(r.HomeStatus),

		DatePosted:    coerceRange(r.DatePosted),
		DateSold:      coerceRange(r.DateSold),
		Price:         coerceRange(r.Price),
		YearBuilt:     coerceRange(r.YearBuilt),
		LivingArea:    coerceRange(r.LivingArea),
		Bathrooms:     coerceRange(r.Bathrooms),
		Bedrooms:      coerceRange(r.Bedrooms),
		PageViewCount: coerceRange(r.PageViewCount),
		FavoriteCount: coerceRange(r.FavoriteCount),
	}
}

func coerceScalar(s *string) string {
	if s == nil {
		return ""
	}
	value := strings.TrimSpace(*s)
	if isNone(value) {
		return ""
	}
	return value
}

func coerceRange(r *rawRange) *model.RangeField {
	if r == nil || r.Value == nil {
		return nil
	}
	if s, ok := r.Value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if isNone(trimmed) || trimmed == "" {
			return nil
		}
		r.Value = trimmed
	}

	operator := ""
	if r.Operator != nil && !isNone(*r.Operator) {
		operator = strings.TrimSpace(*r.Operator)
	}

	return &model.RangeField{Value: r.Value, Operator: operator}
}

func isNone(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), model.FieldNone)
}
