// Package responses contains HTTP response DTOs for the session proxy.
// Ledger response types are in the sessionres subpackage.
package responses

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error" example:"API key not configured"`
}
