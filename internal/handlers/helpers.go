package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/aperio/internal/models"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// DecodeBody decodes a JSON request body into v. A missing or malformed
// body is reported to the caller as a 400.
func DecodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	return true
}

// WriteServiceError maps a pipeline error onto the HTTP contract: input
// errors are 400, missing resources 404, unusable documents 400, parse
// failures 500 carrying the raw response excerpt, anything else 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	var inputErr *models.InputError
	var resErr *models.ResolutionError
	var parseErr *models.ParseError

	switch {
	case errors.As(err, &inputErr):
		WriteError(w, http.StatusBadRequest, inputErr.Message)
	case errors.As(err, &resErr):
		status := http.StatusBadRequest
		if resErr.NotFound {
			status = http.StatusNotFound
		}
		WriteError(w, status, resErr.Message)
	case errors.As(err, &parseErr):
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":      false,
			"error":        parseErr.Error(),
			"raw_response": parseErr.RawResponse,
		})
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
