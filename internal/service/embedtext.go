package service

import (
	"fmt"
	"strconv"
	"strings"

	"core/internal/model"
)

// EmbedFieldOrder is the fixed field order for the embedding text. It must
// match the order used at ingestion time or query and document embeddings
// drift apart.
var EmbedFieldOrder = []string{
	model.FieldCity,
	model.FieldState,
	model.FieldCounty,
	model.FieldZipcode,
	model.FieldDatePosted,
	model.FieldDateSold,
	model.FieldHomeType,
	model.FieldHomeStatus,
	model.FieldPrice,
	model.FieldYearBuilt,
	model.FieldLivingArea,
	model.FieldBathrooms,
	model.FieldBedrooms,
	model.FieldPageViewCount,
	model.FieldFavoriteCount,
}

// NormalizeForEmbedding combines field values into one deterministic string
// for embedding generation: for each field in order, a missing or falsy
// value becomes the literal "none", everything else is stringified, trimmed
// and lower-cased, joined as "field: value" pairs with " | ".
func NormalizeForEmbedding(values map[string]any, fieldOrder []string) string {
	parts := make([]string, 0, len(fieldOrder))
	for _, field := range fieldOrder {
		parts = append(parts, fmt.Sprintf("%s: %s", field, normalizeValue(values[field])))
	}
	return strings.Join(parts, " | ")
}

// EmbeddingText renders structured fields as the embedding input string in
// the canonical field order.
func EmbeddingText(fields *model.StructuredFields) string {
	values := map[string]any{
		model.FieldCity:       fields.City,
		model.FieldState:      fields.State,
		model.FieldCounty:     fields.County,
		model.FieldZipcode:    fields.Zipcode,
		model.FieldHomeType:   fields.HomeType,
		model.FieldHomeStatus: fields.HomeStatus,
	}

	ranges := map[string]*model.RangeField{
		model.FieldDatePosted:    fields.DatePosted,
		model.FieldDateSold:      fields.DateSold,
		model.FieldPrice:         fields.Price,
		model.FieldYearBuilt:     fields.YearBuilt,
		model.FieldLivingArea:    fields.LivingArea,
		model.FieldBathrooms:     fields.Bathrooms,
		model.FieldBedrooms:      fields.Bedrooms,
		model.FieldPageViewCount: fields.PageViewCount,
		model.FieldFavoriteCount: fields.FavoriteCount,
	}
	for name, r := range ranges {
		if r != nil {
			values[name] = r.Value
		}
	}

	return NormalizeForEmbedding(values, EmbedFieldOrder)
}

// normalizeValue stringifies a single field value. Missing and falsy values
// (nil, empty string, zero) map to the "none" literal.
func normalizeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return model.FieldNone
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" {
			return model.FieldNone
		}
		return s
	case float64:
		if v == 0 {
			return model.FieldNone
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return model.FieldNone
		}
		return strconv.Itoa(v)
	default:
		s := strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
		if s == "" {
			return model.FieldNone
		}
		return s
	}
}
