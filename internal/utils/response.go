package utils

import (
	"encoding/json"
	"net/http"

	"tripbook/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with success=false. The message
// is the human-readable detail; internal errors should pass a generic message
// and log the cause instead.
func WriteErrorResponse(w http.ResponseWriter, status int, errLabel, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Success: false,
		Error:   errLabel,
		Message: message,
	})
}

// DecodeJSONRequest decodes the request body into dst, writing a 400 response
// on failure. Callers should return immediately when an error is returned.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
