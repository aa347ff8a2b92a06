// Package httperr defines the typed transport-edge error the HTTP and
// WebSocket handlers translate domain errors into.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sentineldr/core/internal/graph"
)

// Error is a typed, JSON-serializable transport error.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a 404 Error with the given message.
func NotFound(msg string) *Error { return &Error{Status: http.StatusNotFound, Code: "not_found", Message: msg} }

// BadRequest builds a 400 Error with the given message.
func BadRequest(msg string) *Error { return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: msg} }

// Internal builds a 500 Error with the given message.
func Internal(msg string) *Error { return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: msg} }

// FromDomain maps a domain-layer error (currently just graph.ErrNotFound) to
// a transport Error, defaulting to Internal for anything unrecognized.
func FromDomain(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, graph.ErrNotFound) {
		return NotFound(err.Error())
	}
	return Internal(err.Error())
}

// Write serializes err as the HTTP response body with its status code.
func Write(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(err)
}
