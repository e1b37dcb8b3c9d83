// SPDX-License-Identifier: MPL-2.0

package server

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body of every failed API request.
type ErrorResponse struct {
	Error         string `json:"error"`
	Code          string `json:"code,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// The status line is already written; an encode failure can only be a
	// broken connection.
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteErrorWithCode(w, statusCode, message, "")
}

// WriteErrorWithCode writes a JSON error response with a machine-readable code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:         message,
		Code:          code,
		CorrelationID: w.Header().Get(HeaderCorrelationID),
	})
}
