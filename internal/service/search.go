package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"core/internal/metrics"
	"core/internal/model"

	"github.com/google/uuid"
)

// Retriever is the vector store boundary used by the pipeline. Implemented
// by repository.PropertyRepository; tests substitute a fake.
type Retriever interface {
	// SimilaritySearch returns up to limit documents nearest to the query
	// embedding, constrained by the filter expression, in descending
	// similarity order.
	SimilaritySearch(ctx context.Context, embedding []float32, filters model.FilterExpression, limit int) ([]model.PropertyResult, error)

	// LogSearch records one processed query for offline analysis.
	LogSearch(ctx context.Context, searchID, query string, filterCount, resultCount, responseTimeMs int) error
}

// RejectionKind labels the business rule that rejected a query.
type RejectionKind string

const (
	RejectInvalidFormat         RejectionKind = "invalid_format"
	RejectAmbiguous             RejectionKind = "ambiguous"
	RejectNotRealEstate         RejectionKind = "not_real_estate"
	RejectUnsupportedComplexity RejectionKind = "unsupported_complexity"
)

// Rejection is a soft, user-facing refusal of a query.
type Rejection struct {
	Kind    RejectionKind
	Message string
}

// Outcome is the result of one processed request: either a soft rejection
// or a ranked result set with a summary.
type Outcome struct {
	Rejection  *Rejection
	Properties []model.PropertyResult
	Summary    string
}

// SearchService orchestrates the query validation and retrieval pipeline.
type SearchService struct {
	repo        Retriever
	language    *LanguageGate
	validator   *QueryValidator
	messages    *MessageGenerator
	extractor   *FieldExtractor
	embedder    *EmbeddingService
	summarizer  *Summarizer
	gateEnabled bool
	resultLimit int
}

// NewSearchService creates a new search service
func NewSearchService(
	repo Retriever,
	language *LanguageGate,
	validator *QueryValidator,
	messages *MessageGenerator,
	extractor *FieldExtractor,
	embedder *EmbeddingService,
	summarizer *Summarizer,
	gateEnabled bool,
	resultLimit int,
) *SearchService {
	return &SearchService{
		repo:        repo,
		language:    language,
		validator:   validator,
		messages:    messages,
		extractor:   extractor,
		embedder:    embedder,
		summarizer:  summarizer,
		gateEnabled: gateEnabled,
		resultLimit: resultLimit,
	}
}

// ProcessRequest runs the full pipeline for one query. A returned error is
// always a hard infrastructure failure; every business-rule refusal comes
// back as an Outcome with a Rejection.
func (s *SearchService) ProcessRequest(ctx context.Context, userInput string) (*Outcome, error) {
	startTime := time.Now()

	// Optional deterministic language gate in front of the AI format check.
	if s.gateEnabled && !s.language.IsEnglish(userInput) {
		log.Printf("Rejecting non-English query")
		return s.reject(ctx, RejectInvalidFormat, userInput), nil
	}

	// Step 1: validate input format
	stageStart := time.Now()
	validFormat, err := s.validator.ValidateFormat(ctx, userInput)
	metrics.ObserveStage("format_check", time.Since(stageStart))
	if err != nil {
		return nil, err
	}
	if !validFormat {
		return s.reject(ctx, RejectInvalidFormat, userInput), nil
	}

	// Step 2: classify for ambiguity, relevance and complexity.
	// Branch order is a fixed policy: ambiguous wins over non-relevance,
	// which wins over complexity. Exactly one message per request.
	stageStart = time.Now()
	verdict, err := s.validator.Classify(ctx, userInput)
	metrics.ObserveStage("classification", time.Since(stageStart))
	if err != nil {
		return nil, err
	}
	switch {
	case verdict.Ambiguous:
		return s.reject(ctx, RejectAmbiguous, userInput), nil
	case !verdict.RealEstateRelated:
		return s.reject(ctx, RejectNotRealEstate, userInput), nil
	case verdict.UnsupportedComplexity:
		return s.reject(ctx, RejectUnsupportedComplexity, userInput), nil
	}

	// Step 3: extract the structured search fields
	stageStart = time.Now()
	fields, err := s.extractor.ExtractFields(ctx, userInput)
	metrics.ObserveStage("extraction", time.Since(stageStart))
	if err != nil {
		return nil, err
	}

	// Step 4: build the retrieval filter and the query embedding
	filters := BuildFilterExpression(fields)

	stageStart = time.Now()
	embedding, err := s.embedder.Embed(ctx, EmbeddingText(fields))
	metrics.ObserveStage("embedding", time.Since(stageStart))
	if err != nil {
		return nil, err
	}

	// Step 5: similarity search constrained by the filter expression
	stageStart = time.Now()
	results, err := s.repo.SimilaritySearch(ctx, embedding, filters, s.resultLimit)
	metrics.ObserveStage("retrieval", time.Since(stageStart))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	took := int(time.Since(startTime).Milliseconds())
	s.logSearch(userInput, len(filters), len(results), took)

	if len(results) == 0 {
		log.Printf("No properties found matching the given filters")
		return &Outcome{
			Properties: []model.PropertyResult{},
			Summary:    NoResultsSummary,
		}, nil
	}

	// Step 6: summarize. Failure substitutes an empty summary.
	stageStart = time.Now()
	summary := s.summarizer.Summarize(ctx, results, userInput)
	metrics.ObserveStage("summarization", time.Since(stageStart))

	return &Outcome{
		Properties: results,
		Summary:    summary,
	}, nil
}

// reject generates the category's user-facing message and wraps it in a
// soft rejection outcome.
func (s *SearchService) reject(ctx context.Context, kind RejectionKind, userInput string) *Outcome {
	var message string
	switch kind {
	case RejectAmbiguous:
		message = s.messages.Refinement(ctx, userInput)
	case RejectNotRealEstate:
		message = s.messages.NonRealEstate(ctx, userInput)
	case RejectUnsupportedComplexity:
		message = s.messages.UnsupportedComplexity(ctx, userInput)
	default:
		message = s.messages.InvalidFormat(ctx, userInput)
	}

	return &Outcome{Rejection: &Rejection{Kind: kind, Message: message}}
}

// logSearch records the query asynchronously; logging never affects the
// response.
func (s *SearchService) logSearch(query string, filterCount, resultCount, tookMs int) {
	searchID := uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogSearch(ctx, searchID, query, filterCount, resultCount, tookMs); err != nil {
			log.Printf("Warning: failed to log search %s: %v", searchID, err)
		}
	}()
}
