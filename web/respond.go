// ABOUTME: JSON response and error envelope helpers for the API
// ABOUTME: APIError carries a status, ValidationError renders as 422 field errors
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

// APIError is returned to the client verbatim with its status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func apiError(status int, format string, args ...any) *APIError {
	return &APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// ValidationError lists per-field problems with a request body.
type ValidationError struct {
	FieldErrors map[string][]string
	FormErrors  []string
}

func (e *ValidationError) Error() string {
	var parts []string
	for f, msgs := range e.FieldErrors {
		parts = append(parts, f+": "+strings.Join(msgs, ", "))
	}
	parts = append(parts, e.FormErrors...)
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

// required records an error when value is blank.
func (e *ValidationError) required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.add(field, msg)
	}
}

// err returns nil when nothing was recorded.
func (e *ValidationError) err() error {
	if len(e.FieldErrors) == 0 && len(e.FormErrors) == 0 {
		return nil
	}
	return e
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto the error envelope. Unknown errors are logged and hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	var valErr *ValidationError
	switch {
	case errors.As(err, &valErr):
		fieldErrors := valErr.FieldErrors
		if fieldErrors == nil {
			fieldErrors = map[string][]string{}
		}
		formErrors := valErr.FormErrors
		if formErrors == nil {
			formErrors = []string{}
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]any{"fieldErrors": fieldErrors, "formErrors": formErrors},
		})
	case errors.As(err, &apiErr):
		writeJSON(w, apiErr.Status, map[string]string{"error": apiErr.Message})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ValidationError{FormErrors: []string{"invalid JSON body: " + err.Error()}}
	}
	return nil
}

// handlerFunc is an http handler that reports failures as errors.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}
