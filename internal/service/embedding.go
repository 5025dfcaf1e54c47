package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// EmbeddingService generates query embeddings, with an optional redis cache
// in front of the embedding API. The cache key is derived from the
// normalized embedding text, which is deterministic for identical queries,
// so identical searches reuse the same vector.
type EmbeddingService struct {
	ai    AIClient
	cache *redis.Client // nil when caching is disabled
	ttl   time.Duration
}

// NewEmbeddingService creates a new embedding service. cache may be nil.
func NewEmbeddingService(ai AIClient, cache *redis.Client, ttl time.Duration) *EmbeddingService {
	return &EmbeddingService{
		ai:    ai,
		cache: cache,
		ttl:   ttl,
	}
}

// Embed returns the embedding vector for the normalized text. Cache errors
// are never fatal; they degrade to a direct embedding call.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var embedding []float32
			if err := json.Unmarshal(cached, &embedding); err == nil && len(embedding) > 0 {
				return embedding, nil
			}
		} else if err != redis.Nil {
			log.Printf("Warning: embedding cache read failed: %v", err)
		}
	}

	embedding, err := s.ai.CreateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrEmbedding)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(embedding); err == nil {
			if err := s.cache.Set(ctx, key, encoded, s.ttl).Err(); err != nil {
				log.Printf("Warning: embedding cache write failed: %v", err)
			}
		}
	}

	return embedding, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:" + hex.EncodeToString(sum[:])
}
