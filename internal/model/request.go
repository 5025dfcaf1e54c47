package model

// UserRequest is the body of POST /process_request.
type UserRequest struct {
	UserInput string `json:"user_input" binding:"required"`
}

// ErrorResponse is the soft-rejection shape, returned with HTTP 200 when a
// query fails a business rule (format, ambiguity, relevance, complexity).
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SearchResponse is the success shape: ranked properties plus a natural
// language summary.
type SearchResponse struct {
	Properties []PropertyResult `json:"properties"`
	Summary    string           `json:"summary"`
}
