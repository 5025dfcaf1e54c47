package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"core/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// fieldColumns maps filter field names to their postgres columns. Fields
// outside this map never reach the query.
var fieldColumns = map[string]string{
	model.FieldCity:          "city",
	model.FieldState:         "state",
	model.FieldHomeType:      "home_type",
	model.FieldHomeStatus:    "home_status",
	model.FieldDatePosted:    "date_posted",
	model.FieldDateSold:      "date_sold",
	model.FieldPrice:         "price",
	model.FieldYearBuilt:     "year_built",
	model.FieldLivingArea:    "living_area",
	model.FieldBathrooms:     "bathrooms",
	model.FieldBedrooms:      "bedrooms",
	model.FieldPageViewCount: "page_view_count",
	model.FieldFavoriteCount: "favorite_count",
}

// sqlOperators maps filter operators to their SQL comparison.
var sqlOperators = map[string]string{
	model.OpGTE: ">=",
	model.OpLTE: "<=",
	model.OpEQ:  "=",
}

const propertyColumns = `
	id, city, state, county, zipcode, home_type, home_status,
	date_posted, date_sold, price, year_built, living_area,
	bathrooms, bedrooms, page_view_count, favorite_count,
	details, created_at, updated_at`

// PropertyRepository handles database operations
type PropertyRepository struct {
	db *sqlx.DB
}

// propertyRow is a Property plus the computed similarity column.
type propertyRow struct {
	model.Property
	Similarity *float64 `db:"similarity"`
}

// NewPropertyRepository creates a new PostgreSQL repository
func NewPropertyRepository(dsn string, maxConn, maxIdleConn int) (*PropertyRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PropertyRepository{db: db}, nil
}

// Close closes the database connection
func (r *PropertyRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the pgvector extension, the properties table with the
// configured embedding dimension and the search log table.
func (r *PropertyRepository) EnsureSchema(ctx context.Context, embeddingDims int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS properties (
			id BIGSERIAL PRIMARY KEY,
			city TEXT,
			state TEXT,
			county TEXT,
			zipcode TEXT,
			home_type TEXT,
			home_status TEXT,
			date_posted DATE,
			date_sold DATE,
			price DOUBLE PRECISION,
			year_built INTEGER,
			living_area DOUBLE PRECISION,
			bathrooms DOUBLE PRECISION,
			bedrooms DOUBLE PRECISION,
			page_view_count INTEGER,
			favorite_count INTEGER,
			details JSONB,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, embeddingDims),
		`CREATE INDEX IF NOT EXISTS properties_embedding_idx
			ON properties USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
		`CREATE TABLE IF NOT EXISTS search_logs (
			search_id UUID PRIMARY KEY,
			query TEXT NOT NULL,
			filter_count INTEGER NOT NULL,
			result_count INTEGER NOT NULL,
			response_time_ms INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// SimilaritySearch returns the documents nearest to the query embedding,
// constrained by the filter expression, in descending-similarity order.
// Similarity is cosine similarity (1 - cosine distance).
func (r *PropertyRepository) SimilaritySearch(
	ctx context.Context,
	embedding []float32,
	filters model.FilterExpression,
	limit int,
) ([]model.PropertyResult, error) {
	whereClause, args := buildWhereClause(filters, 2) // $1 is the query vector

	query := fmt.Sprintf(`
		SELECT %s,
			1 - (embedding <=> $1) AS similarity
		FROM properties
		WHERE embedding IS NOT NULL AND %s
		ORDER BY embedding <=> $1
		LIMIT $%d
	`, propertyColumns, whereClause, len(args)+2)

	queryArgs := append([]interface{}{pgvector.NewVector(embedding)}, args...)
	queryArgs = append(queryArgs, limit)

	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, query, queryArgs...); err != nil {
		return nil, fmt.Errorf("failed to run similarity search: %w", err)
	}

	results := make([]model.PropertyResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, model.PropertyResult{
			Document:   row.Property,
			Similarity: row.Similarity,
		})
	}
	return results, nil
}

// buildWhereClause compiles a filter expression into an AND-joined SQL
// condition with positional args starting at $argStart. The empty expression
// compiles to a match-all condition.
func buildWhereClause(filters model.FilterExpression, argStart int) (string, []interface{}) {
	clauses := []string{"1=1"}
	args := make([]interface{}, 0, len(filters))
	argIndex := argStart

	for _, f := range filters {
		column, ok := fieldColumns[f.Field]
		if !ok {
			continue
		}
		op, ok := sqlOperators[f.Operator]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, op, argIndex))
		args = append(args, f.Value)
		argIndex++
	}

	return strings.Join(clauses, " AND "), args
}

// UpsertProperties inserts a batch of property rows with their embeddings.
// Returns the number of successful inserts plus per-row error descriptions.
func (r *PropertyRepository) UpsertProperties(ctx context.Context, properties []model.Property) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO properties (
			city, state, county, zipcode, home_type, home_status,
			date_posted, date_sold, price, year_built, living_area,
			bathrooms, bedrooms, page_view_count, favorite_count,
			details, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for i, p := range properties {
		_, err := stmt.ExecContext(ctx,
			p.City, p.State, p.County, p.Zipcode, p.HomeType, p.HomeStatus,
			p.DatePosted, p.DateSold, p.Price, p.YearBuilt, p.LivingArea,
			p.Bathrooms, p.Bedrooms, p.PageViewCount, p.FavoriteCount,
			p.Details, p.Embedding,
		)
		if err != nil {
			errors = append(errors, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogSearch logs a processed search query
func (r *PropertyRepository) LogSearch(ctx context.Context, searchID, query string, filterCount, resultCount, responseTimeMs int) error {
	logQuery := `
		INSERT INTO search_logs (search_id, query, filter_count, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, logQuery, searchID, query, filterCount, resultCount, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}
