package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"core/internal/config"
	"core/internal/model"
	"core/internal/repository"
	"core/internal/service"

	"github.com/pgvector/pgvector-go"
)

// csvColumns are the expected header names, matched case-insensitively.
var csvColumns = []string{
	"city", "state", "county", "zipcode", "hometype", "homestatus",
	"datePosted", "dateSold", "price", "yearBuilt", "livingArea",
	"bathrooms", "bedrooms", "pageViewCount", "favoriteCount",
}

func main() {
	csvPath := flag.String("csv", "", "path to the property CSV export")
	ensureSchema := flag.Bool("ensure-schema", true, "create tables and the vector extension before loading")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("Usage: loader -csv <file.csv>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.OpenAI.Enabled {
		log.Fatal("OPENAI_API_KEY is required to generate document embeddings")
	}

	repo, err := repository.NewPropertyRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	ctx := context.Background()
	if *ensureSchema {
		if err := repo.EnsureSchema(ctx, cfg.OpenAI.EmbeddingDimensions); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		log.Println("✅ Schema ensured")
	}

	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		log.Fatalf("Failed to read CSV header: %v", err)
	}
	columnIndex := indexColumns(header)

	startTime := time.Now()
	totalLoaded := 0
	totalFailed := 0
	rowNum := 0

	batch := make([]model.Property, 0, cfg.OpenAI.BatchSize)
	texts := make([]string, 0, cfg.OpenAI.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		embeddings, err := openaiClient.CreateEmbeddings(ctx, texts)
		if err != nil {
			log.Fatalf("Failed to generate embeddings: %v", err)
		}
		for i := range batch {
			batch[i].Embedding = pgvector.NewVector(embeddings[i])
		}
		loaded, rowErrors := repo.UpsertProperties(ctx, batch)
		totalLoaded += loaded
		totalFailed += len(rowErrors)
		for _, rowErr := range rowErrors {
			log.Printf("⚠️  Insert failed: %s", rowErr)
		}
		batch = batch[:0]
		texts = texts[:0]
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("⚠️  Skipping malformed row %d: %v", rowNum+1, err)
			totalFailed++
			continue
		}
		rowNum++

		values := rowValues(record, columnIndex)
		batch = append(batch, buildProperty(values))
		texts = append(texts, service.NormalizeForEmbedding(values, service.EmbedFieldOrder))

		if len(batch) >= cfg.OpenAI.BatchSize {
			flush()
		}
		if rowNum%200 == 0 {
			log.Printf("Processed %d rows (%d loaded, %d failed)", rowNum, totalLoaded, totalFailed)
		}
	}
	flush()

	log.Printf("✅ Load complete: %d rows loaded, %d failed in %.1fs",
		totalLoaded, totalFailed, time.Since(startTime).Seconds())
}

// indexColumns maps known column names to their position in the header.
func indexColumns(header []string) map[string]int {
	lookup := make(map[string]int, len(header))
	for i, name := range header {
		lookup[strings.ToLower(strings.TrimSpace(name))] = i
	}
	index := make(map[string]int, len(csvColumns))
	for _, col := range csvColumns {
		if i, ok := lookup[strings.ToLower(col)]; ok {
			index[col] = i
		}
	}
	return index
}

// rowValues extracts the typed field values from one CSV record, keyed by
// field name. Numeric columns parse to float64/int, everything else stays a
// string; blank cells are absent from the map.
func rowValues(record []string, columnIndex map[string]int) map[string]any {
	values := make(map[string]any, len(columnIndex))
	for field, i := range columnIndex {
		if i >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[i])
		if cell == "" {
			continue
		}
		switch field {
		case model.FieldPrice, model.FieldLivingArea, model.FieldBathrooms, model.FieldBedrooms:
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				values[field] = f
			}
		case model.FieldYearBuilt, model.FieldPageViewCount, model.FieldFavoriteCount:
			if n, err := strconv.Atoi(cell); err == nil {
				values[field] = n
			}
		default:
			values[field] = cell
		}
	}
	return values
}

// buildProperty converts extracted row values into a Property document.
func buildProperty(values map[string]any) model.Property {
	p := model.Property{}
	if s, ok := values[model.FieldCity].(string); ok {
		p.City = &s
	}
	if s, ok := values[model.FieldState].(string); ok {
		p.State = &s
	}
	if s, ok := values[model.FieldCounty].(string); ok {
		p.County = &s
	}
	if s, ok := values[model.FieldZipcode].(string); ok {
		p.Zipcode = &s
	}
	if s, ok := values[model.FieldHomeType].(string); ok {
		p.HomeType = &s
	}
	if s, ok := values[model.FieldHomeStatus].(string); ok {
		p.HomeStatus = &s
	}
	if s, ok := values[model.FieldDatePosted].(string); ok {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			p.DatePosted = &t
		}
	}
	if s, ok := values[model.FieldDateSold].(string); ok {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			p.DateSold = &t
		}
	}
	if f, ok := values[model.FieldPrice].(float64); ok {
		p.Price = &f
	}
	if n, ok := values[model.FieldYearBuilt].(int); ok {
		p.YearBuilt = &n
	}
	if f, ok := values[model.FieldLivingArea].(float64); ok {
		p.LivingArea = &f
	}
	if f, ok := values[model.FieldBathrooms].(float64); ok {
		p.Bathrooms = &f
	}
	if f, ok := values[model.FieldBedrooms].(float64); ok {
		p.Bedrooms = &f
	}
	if n, ok := values[model.FieldPageViewCount].(int); ok {
		p.PageViewCount = &n
	}
	if n, ok := values[model.FieldFavoriteCount].(int); ok {
		p.FavoriteCount = &n
	}
	return p
}
