package service

import (
	"context"
)

// AIClient is the boundary to the text classification/generation and
// embedding collaborator. Implementations are stateless with respect to
// query data and safe for concurrent use.
type AIClient interface {
	// ChatCompletion performs a single request/response chat call.
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)

	// CreateEmbedding generates one embedding vector for the given text.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)

	// CreateEmbeddings generates embeddings for texts, batching as needed.
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// IsEnabled returns whether the AI client is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
