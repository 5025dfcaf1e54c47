package model

// FieldNone is the sentinel the extraction service emits for values it could
// not pick up from the user's request. It only exists at that protocol
// boundary; coerced StructuredFields never carry it.
const FieldNone = "none"

// Comparison operators accepted in range filters.
const (
	OpGTE = "gte"
	OpLTE = "lte"
	OpEQ  = "eq"
)

// Names of the 15 extraction schema fields.
const (
	FieldCity          = "city"
	FieldState         = "state"
	FieldCounty        = "county"
	FieldZipcode       = "zipcode"
	FieldHomeType      = "hometype"
	FieldHomeStatus    = "homestatus"
	FieldDatePosted    = "datePosted"
	FieldDateSold      = "dateSold"
	FieldPrice         = "price"
	FieldYearBuilt     = "yearBuilt"
	FieldLivingArea    = "livingArea"
	FieldBathrooms     = "bathrooms"
	FieldBedrooms      = "bedrooms"
	FieldPageViewCount = "pageViewCount"
	FieldFavoriteCount = "favoriteCount"
)

// RangeField holds a comparison value and its operator for a range field.
// Value keeps whatever JSON type the extractor produced (number or string);
// an operator outside {gte, lte, eq} means the field produces no filter.
type RangeField struct {
	Value    any    `json:"value"`
	Operator string `json:"operator"`
}

// StructuredFields is the coerced 15-field property search schema extracted
// from a natural language query. Absent scalars are empty strings and absent
// range fields are nil pointers.
type StructuredFields struct {
	City       string `json:"city"`
	State      string `json:"state"`
	County     string `json:"county"`
	Zipcode    string `json:"zipcode"`
	HomeType   string `json:"hometype"`
	HomeStatus string `json:"homestatus"`

	DatePosted    *RangeField `json:"datePosted,omitempty"`
	DateSold      *RangeField `json:"dateSold,omitempty"`
	Price         *RangeField `json:"price,omitempty"`
	YearBuilt     *RangeField `json:"yearBuilt,omitempty"`
	LivingArea    *RangeField `json:"livingArea,omitempty"`
	Bathrooms     *RangeField `json:"bathrooms,omitempty"`
	Bedrooms      *RangeField `json:"bedrooms,omitempty"`
	PageViewCount *RangeField `json:"pageViewCount,omitempty"`
	FavoriteCount *RangeField `json:"favoriteCount,omitempty"`
}

// ValidationVerdict is the tri-flag result of the query classification call.
// Multiple flags can be true at once; the pipeline applies them in a fixed
// order (ambiguous, then relevance, then complexity).
type ValidationVerdict struct {
	Ambiguous             bool `json:"ambiguous"`
	RealEstateRelated     bool `json:"real_estate_related"`
	UnsupportedComplexity bool `json:"unsupported_complexity"`
}
