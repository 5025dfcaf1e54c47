package handler

import (
	"errors"
	"log"
	"net/http"

	"core/internal/metrics"
	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles property search requests
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// ProcessRequest handles POST /process_request
func (h *SearchHandler) ProcessRequest(c *gin.Context) {
	var req model.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body. Expected {\"user_input\": \"...\"}."})
		return
	}

	outcome, err := h.search.ProcessRequest(c.Request.Context(), req.UserInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			log.Printf("❌ Query validation failed: %v", err)
		case errors.Is(err, service.ErrExtraction):
			log.Printf("❌ Field extraction failed: %v", err)
		case errors.Is(err, service.ErrEmbedding):
			log.Printf("❌ Embedding generation failed: %v", err)
		case errors.Is(err, service.ErrRetrieval):
			log.Printf("❌ Similarity retrieval failed: %v", err)
		default:
			log.Printf("❌ Search pipeline failed: %v", err)
		}
		metrics.RecordOutcome(metrics.OutcomeError)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error processing search request."})
		return
	}

	if outcome.Rejection != nil {
		metrics.RecordOutcome(string(outcome.Rejection.Kind))
		c.JSON(http.StatusOK, model.ErrorResponse{
			Status:  "error",
			Message: outcome.Rejection.Message,
		})
		return
	}

	if len(outcome.Properties) == 0 {
		metrics.RecordOutcome(metrics.OutcomeNoResults)
	} else {
		metrics.RecordOutcome(metrics.OutcomeSuccess)
	}

	c.JSON(http.StatusOK, model.SearchResponse{
		Properties: outcome.Properties,
		Summary:    outcome.Summary,
	})
}
