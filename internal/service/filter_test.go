package service

import (
	"reflect"
	"testing"

	"core/internal/model"
)

func TestBuildFilterExpression(t *testing.T) {
	tests := []struct {
		name   string
		fields *model.StructuredFields
		want   model.FilterExpression
	}{
		{
			name: "scalars and ranges",
			fields: &model.StructuredFields{
				City:       "austin",
				State:      "tx",
				HomeStatus: "for sale",
				Price:      &model.RangeField{Value: float64(400000), Operator: model.OpLTE},
				Bedrooms:   &model.RangeField{Value: float64(3), Operator: model.OpEQ},
			},
			want: model.FilterExpression{
				{Field: model.FieldCity, Operator: model.OpEQ, Value: "Austin"},
				{Field: model.FieldState, Operator: model.OpEQ, Value: "TX"},
				{Field: model.FieldHomeStatus, Operator: model.OpEQ, Value: "For Sale"},
				{Field: model.FieldPrice, Operator: model.OpLTE, Value: float64(400000)},
				{Field: model.FieldBedrooms, Operator: model.OpEQ, Value: float64(3)},
			},
		},
		{
			name:   "all fields absent yields match-all",
			fields: &model.StructuredFields{},
			want:   nil,
		},
		{
			name: "unknown operator drops the field only",
			fields: &model.StructuredFields{
				City:     "dallas",
				Price:    &model.RangeField{Value: float64(500000), Operator: "gt"},
				Bedrooms: &model.RangeField{Value: float64(2), Operator: model.OpGTE},
			},
			want: model.FilterExpression{
				{Field: model.FieldCity, Operator: model.OpEQ, Value: "Dallas"},
				{Field: model.FieldBedrooms, Operator: model.OpGTE, Value: float64(2)},
			},
		},
		{
			name: "range without value is skipped",
			fields: &model.StructuredFields{
				YearBuilt: &model.RangeField{Value: nil, Operator: model.OpGTE},
			},
			want: nil,
		},
		{
			name: "multi-word home type is title-cased",
			fields: &model.StructuredFields{
				HomeType: "single family",
			},
			want: model.FilterExpression{
				{Field: model.FieldHomeType, Operator: model.OpEQ, Value: "Single Family"},
			},
		},
		{
			name: "date range passes through",
			fields: &model.StructuredFields{
				DatePosted: &model.RangeField{Value: "2024-06-01", Operator: model.OpGTE},
			},
			want: model.FilterExpression{
				{Field: model.FieldDatePosted, Operator: model.OpGTE, Value: "2024-06-01"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilterExpression(tt.fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildFilterExpression() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBuildFilterExpressionIsDeterministic(t *testing.T) {
	fields := &model.StructuredFields{
		City:      "houston",
		State:     "tx",
		Price:     &model.RangeField{Value: float64(750000), Operator: model.OpLTE},
		Bathrooms: &model.RangeField{Value: float64(2), Operator: model.OpGTE},
	}

	first := BuildFilterExpression(fields)
	for i := 0; i < 10; i++ {
		if got := BuildFilterExpression(fields); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different expression: %#v", i, got)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"austin", "Austin"},
		{"SAN FRANCISCO", "San Francisco"},
		{"for sale", "For Sale"},
		{"recently SOLD", "Recently Sold"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
