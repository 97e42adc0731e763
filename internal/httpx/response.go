// Package httpx holds the small JSON response helpers shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes shared across the API. Endpoint-specific codes (order_not_found,
// export_in_progress, ...) live at their call sites.
const (
	CodeInvalidJSON      = "invalid_json"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeInternalError    = "internal_error"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// BadJSON reports an unparseable request body.
func BadJSON(w http.ResponseWriter) {
	JSONError(w, http.StatusBadRequest, CodeInvalidJSON, nil)
}

// Invalid reports field violations collected at the API edge.
func Invalid(w http.ResponseWriter, violations any) {
	JSONError(w, http.StatusUnprocessableEntity, CodeValidationFailed, violations)
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}
