// Package api defines the shared HTTP request and response types used by
// every transport handler.
package api

// ErrorResponse is the generic error body returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success body for operations without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the signed JWT and the caller's role after login.
type TokenResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// PagedResponse is the envelope for paginated listings.
type PagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
