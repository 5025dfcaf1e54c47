package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAI replays canned chat replies in call order.
type scriptedAI struct {
	replies   []string
	chatErr   error
	embedding []float32
}

func (s *scriptedAI) ChatCompletion(_ context.Context, _ service.ChatCompletionRequest) (*service.ChatCompletionResponse, error) {
	if s.chatErr != nil {
		return nil, s.chatErr
	}
	if len(s.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]

	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": reply}},
		},
	}
	data, _ := json.Marshal(payload)
	var resp service.ChatCompletionResponse
	_ = json.Unmarshal(data, &resp)
	return &resp, nil
}

func (s *scriptedAI) CreateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return s.embedding, nil
}

func (s *scriptedAI) CreateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.embedding
	}
	return out, nil
}

func (s *scriptedAI) IsEnabled() bool { return true }

type stubRetriever struct {
	results []model.PropertyResult
	err     error
}

func (s *stubRetriever) SimilaritySearch(_ context.Context, _ []float32, _ model.FilterExpression, _ int) ([]model.PropertyResult, error) {
	return s.results, s.err
}

func (s *stubRetriever) LogSearch(_ context.Context, _, _ string, _, _, _ int) error {
	return nil
}

const extractionReply = `{
	"city": "Austin", "state": "TX", "county": "none", "zipcode": "none",
	"hometype": "none", "homestatus": "none",
	"datePosted": {"value": "none"}, "dateSold": {"value": "none"},
	"price": {"value": "none"}, "yearBuilt": {"value": "none"},
	"livingArea": {"value": "none"}, "bathrooms": {"value": "none"},
	"bedrooms": {"value": 3, "operator": "eq"},
	"pageViewCount": {"value": "none"}, "favoriteCount": {"value": "none"}
}`

func newTestRouter(ai service.AIClient, repo service.Retriever) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewSearchService(
		repo,
		nil,
		service.NewQueryValidator(ai),
		service.NewMessageGenerator(ai),
		service.NewFieldExtractor(ai),
		service.NewEmbeddingService(ai, nil, time.Hour),
		service.NewSummarizer(ai),
		false,
		21,
	)

	router := gin.New()
	router.POST("/process_request", NewSearchHandler(svc).ProcessRequest)
	return router
}

func postRequest(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/process_request", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestProcessRequest_Success(t *testing.T) {
	city := "Austin"
	sim := 0.91
	ai := &scriptedAI{
		replies: []string{
			"true",
			`{"ambiguous": false, "real_estate_related": true, "unsupported_complexity": false}`,
			extractionReply,
			"**Overview**: one home in Austin.",
		},
		embedding: []float32{0.1, 0.2},
	}
	repo := &stubRetriever{results: []model.PropertyResult{
		{Document: model.Property{ID: 1, City: &city}, Similarity: &sim},
	}}

	recorder := postRequest(t, newTestRouter(ai, repo), `{"user_input": "Find homes with 3 bedrooms in Austin"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Properties, 1)
	assert.Equal(t, "**Overview**: one home in Austin.", resp.Summary)
}

func TestProcessRequest_RejectionReturnsErrorEnvelope(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		"true",
		`{"ambiguous": true, "real_estate_related": true, "unsupported_complexity": false}`,
		"Please add a location or price range to your query.",
	}}

	recorder := postRequest(t, newTestRouter(ai, &stubRetriever{}), `{"user_input": "something nice"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Please add a location or price range to your query.", resp.Message)
}

func TestProcessRequest_BadRequestBody(t *testing.T) {
	ai := &scriptedAI{}

	tests := []struct {
		name string
		body string
	}{
		{"missing user_input", `{}`},
		{"wrong field", `{"query": "homes in Austin"}`},
		{"malformed json", `{"user_input": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postRequest(t, newTestRouter(ai, &stubRetriever{}), tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestProcessRequest_PipelineErrorReturns500(t *testing.T) {
	ai := &scriptedAI{
		replies: []string{
			"true",
			`{"ambiguous": false, "real_estate_related": true, "unsupported_complexity": false}`,
			extractionReply,
		},
		embedding: []float32{0.1},
	}
	repo := &stubRetriever{err: errors.New("connection refused")}

	recorder := postRequest(t, newTestRouter(ai, repo), `{"user_input": "Find homes in Austin"}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Error processing search request.", resp["detail"])
}
