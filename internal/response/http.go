package response

// APIResponse is the envelope of every successful API answer. Data holds the
// sheets listing, a tab report or the load history.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse carries the error text of a failed request; the HTTP status
// tells the kind (503 unconfigured, 502 load failure, 422 missing column,
// 404 unknown tab, 400 bad input).
type ErrorResponse struct {
	Error string `json:"error"`
}
