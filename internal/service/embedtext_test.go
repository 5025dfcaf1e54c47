package service

import (
	"strings"
	"testing"

	"core/internal/model"
)

func TestNormalizeForEmbedding(t *testing.T) {
	values := map[string]any{
		model.FieldCity:     "Austin",
		model.FieldState:    "TX",
		model.FieldPrice:    float64(400000),
		model.FieldBedrooms: float64(3),
	}

	got := NormalizeForEmbedding(values, EmbedFieldOrder)
	want := "city: austin | state: tx | county: none | zipcode: none | " +
		"datePosted: none | dateSold: none | hometype: none | homestatus: none | " +
		"price: 400000 | yearBuilt: none | livingArea: none | bathrooms: none | " +
		"bedrooms: 3 | pageViewCount: none | favoriteCount: none"

	if got != want {
		t.Errorf("NormalizeForEmbedding() =\n%q\nwant\n%q", got, want)
	}
}

func TestNormalizeForEmbeddingIsDeterministic(t *testing.T) {
	values := map[string]any{
		model.FieldCity:  "Seattle",
		model.FieldPrice: float64(850000),
	}

	first := NormalizeForEmbedding(values, EmbedFieldOrder)
	for i := 0; i < 20; i++ {
		if got := NormalizeForEmbedding(values, EmbedFieldOrder); got != first {
			t.Fatalf("run %d produced different text: %q", i, got)
		}
	}
}

func TestNormalizeForEmbeddingFalsyValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"whitespace string", "   "},
		{"zero float", float64(0)},
		{"zero int", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeForEmbedding(map[string]any{model.FieldPrice: tt.value}, []string{model.FieldPrice})
			if got != "price: none" {
				t.Errorf("got %q, want %q", got, "price: none")
			}
		})
	}
}

func TestEmbeddingText(t *testing.T) {
	fields := &model.StructuredFields{
		City:       "Austin",
		State:      "TX",
		HomeStatus: "For Sale",
		Price:      &model.RangeField{Value: float64(400000), Operator: model.OpLTE},
		Bedrooms:   &model.RangeField{Value: float64(3), Operator: model.OpEQ},
	}

	got := EmbeddingText(fields)

	if !strings.Contains(got, "city: austin") {
		t.Errorf("expected city in %q", got)
	}
	if !strings.Contains(got, "homestatus: for sale") {
		t.Errorf("expected homestatus in %q", got)
	}
	if !strings.Contains(got, "price: 400000") {
		t.Errorf("expected price in %q", got)
	}
	if !strings.Contains(got, "county: none") {
		t.Errorf("expected absent fields to render as none in %q", got)
	}
	if parts := strings.Split(got, " | "); len(parts) != len(EmbedFieldOrder) {
		t.Errorf("expected %d parts, got %d: %q", len(EmbedFieldOrder), len(parts), got)
	}
}
