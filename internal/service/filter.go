package service

import (
	"strings"
	"unicode"

	"core/internal/model"
)

// allowedOperators is the single operator set consulted when deciding
// whether a range field produces a filter.
var allowedOperators = map[string]struct{}{
	model.OpGTE: {},
	model.OpLTE: {},
	model.OpEQ:  {},
}

// BuildFilterExpression converts structured fields into the conjunctive
// retrieval filter. Pure and total: malformed upstream shapes never reach
// here, and a field that cannot produce a valid predicate is dropped rather
// than failing the request. All-absent input yields the empty (match-all)
// expression.
//
// Scalar fields city, state, hometype and homestatus emit equality filters
// with normalized casing; the remaining range fields emit their operator and
// value unchanged when the operator is one of gte/lte/eq.
func BuildFilterExpression(fields *model.StructuredFields) model.FilterExpression {
	var filters model.FilterExpression

	scalars := []struct {
		name  string
		value string
	}{
		{model.FieldCity, fields.City},
		{model.FieldState, fields.State},
		{model.FieldHomeType, fields.HomeType},
		{model.FieldHomeStatus, fields.HomeStatus},
	}
	for _, s := range scalars {
		if s.value == "" {
			continue
		}
		value := s.value
		if s.name == model.FieldState {
			// States are stored as 2-letter abbreviations
			value = strings.ToUpper(value)
		} else {
			value = titleCase(value)
		}
		filters = append(filters, model.FieldFilter{
			Field:    s.name,
			Operator: model.OpEQ,
			Value:    value,
		})
	}

	ranges := []struct {
		name  string
		field *model.RangeField
	}{
		{model.FieldDatePosted, fields.DatePosted},
		{model.FieldDateSold, fields.DateSold},
		{model.FieldPrice, fields.Price},
		{model.FieldYearBuilt, fields.YearBuilt},
		{model.FieldLivingArea, fields.LivingArea},
		{model.FieldBathrooms, fields.Bathrooms},
		{model.FieldBedrooms, fields.Bedrooms},
		{model.FieldPageViewCount, fields.PageViewCount},
		{model.FieldFavoriteCount, fields.FavoriteCount},
	}
	for _, r := range ranges {
		if r.field == nil || r.field.Value == nil {
			continue
		}
		if _, ok := allowedOperators[r.field.Operator]; !ok {
			// Unknown operator: drop the field, never the request
			continue
		}
		filters = append(filters, model.FieldFilter{
			Field:    r.name,
			Operator: r.field.Operator,
			Value:    r.field.Value,
		})
	}

	return filters
}

// titleCase upper-cases the first letter of each word, lower-casing the
// rest ("austin" -> "Austin", "for sale" -> "For Sale").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
