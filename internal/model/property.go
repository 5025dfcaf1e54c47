package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Property represents one property document in the vector store.
type Property struct {
	ID            int64           `json:"id" db:"id"`
	City          *string         `json:"city,omitempty" db:"city"`
	State         *string         `json:"state,omitempty" db:"state"`
	County        *string         `json:"county,omitempty" db:"county"`
	Zipcode       *string         `json:"zipcode,omitempty" db:"zipcode"`
	HomeType      *string         `json:"hometype,omitempty" db:"home_type"`
	HomeStatus    *string         `json:"homestatus,omitempty" db:"home_status"`
	DatePosted    *time.Time      `json:"datePosted,omitempty" db:"date_posted"`
	DateSold      *time.Time      `json:"dateSold,omitempty" db:"date_sold"`
	Price         *float64        `json:"price,omitempty" db:"price"`
	YearBuilt     *int            `json:"yearBuilt,omitempty" db:"year_built"`
	LivingArea    *float64        `json:"livingArea,omitempty" db:"living_area"`
	Bathrooms     *float64        `json:"bathrooms,omitempty" db:"bathrooms"`
	Bedrooms      *float64        `json:"bedrooms,omitempty" db:"bedrooms"`
	PageViewCount *int            `json:"pageViewCount,omitempty" db:"page_view_count"`
	FavoriteCount *int            `json:"favoriteCount,omitempty" db:"favorite_count"`
	Details       JSONMap         `json:"details,omitempty" db:"details"`
	Embedding     pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// PropertyResult pairs a retrieved document with its similarity to the query
// embedding. Similarity is nil when the store did not report one.
type PropertyResult struct {
	Document   Property `json:"document"`
	Similarity *float64 `json:"similarity"`
}

// JSONMap represents a JSONB column holding pass-through listing attributes
// that have no dedicated column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
