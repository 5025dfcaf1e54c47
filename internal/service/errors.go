package service

import "errors"

// Hard pipeline failures. Each stage wraps its collaborator error with the
// matching kind so the handler can log the stage while returning a generic
// HTTP 500 to the caller.
var (
	ErrValidation = errors.New("query validation failed")
	ErrExtraction = errors.New("field extraction failed")
	ErrEmbedding  = errors.New("embedding generation failed")
	ErrRetrieval  = errors.New("retrieval query failed")
)
