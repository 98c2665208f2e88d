// Package httputil writes JSON responses and the shared error envelope.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "credo-consent/pkg/domain-errors"
)

// serverErrorDescription replaces internal messages so engine or storage
// details never reach the client.
const serverErrorDescription = "An unexpected error occurred"

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidRequest, dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotAuthenticated:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError translates err into the JSON error envelope. Anything that is
// not a client-facing code is reported as server_error.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := StatusFor(code)

	resp := ErrorResponse{Error: string(code)}
	if status == http.StatusInternalServerError {
		resp.Error = string(dErrors.CodeServerError)
		resp.ErrorDescription = serverErrorDescription
	} else if de, ok := dErrors.As(err); ok {
		resp.ErrorDescription = de.Message
	}
	WriteJSON(w, status, resp)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
