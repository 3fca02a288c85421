package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeUpstreamFailure = "upstream_failure"
	ErrCodeInternalError   = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// Success is true exactly when Error is nil.
// swagger:model APIResponse
type APIResponse struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      *APIError       `json:"error,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes statusCode and an envelope carrying data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Data: data})
}

// WriteJSONMessage writes a success envelope with only a human-readable message.
func WriteJSONMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIResponse{Success: true, Message: message})
}

// WriteJSONPage writes a success envelope for a paginated list.
func WriteJSONPage(w http.ResponseWriter, data any, meta PaginationMeta) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data, Pagination: &meta})
}

// WriteJSONError writes statusCode and an envelope with success=false. The message is also
// copied to the top-level message field for clients that only read that.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   &APIError{Code: code, Message: message},
	})
}
