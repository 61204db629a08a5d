// internal/app/features/apierrors/apierrors.go
//
// JSON response helpers shared by every feature handler. All error bodies
// have the shape {"error": "..."} so the client can surface them uniformly.
package apierrors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WriteJSON encodes v with the given status. Encoding failures are logged
// by net/http's default error path; headers are already flushed by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errBody{Error: msg})
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

func WriteUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "sign in required")
}

func WriteForbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "forbidden"
	}
	WriteError(w, http.StatusForbidden, msg)
}

func WriteNotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "not found"
	}
	WriteError(w, http.StatusNotFound, msg)
}

// WriteServerError logs the underlying error and returns an opaque 500.
// Internal detail never reaches the client.
func WriteServerError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	logger.Error("request failed", zap.String("op", op), zap.Error(err))
	WriteError(w, http.StatusInternalServerError, "internal error")
}

// Decode reads a JSON request body into dst and writes the 400 itself on
// failure, returning false so the handler can bail with a bare return.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "invalid request body")
		return false
	}
	return true
}
