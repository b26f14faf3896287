package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	// NotFoundBody is the plain-text body for a routing miss.
	NotFoundBody = "Sorry can't find that!"
	// BrokenBody is the plain-text body for a failure outside any handler.
	BrokenBody = "Something broke!"

	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// SerializationError means an outcome's value could not be encoded.
// Nothing has been written to the client when it is returned.
type SerializationError struct {
	Kind Kind
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s outcome: %v", e.Kind, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Writer renders an Outcome onto the wire.
type Writer interface {
	Write(w http.ResponseWriter, out Outcome) error
}

// JSONWriter writes values and handled errors as JSON and routing misses as plain text.
type JSONWriter struct{}

type errorBody struct {
	Error string `json:"error"`
}

func (JSONWriter) Write(w http.ResponseWriter, out Outcome) error {
	switch out.Kind {
	case KindOK:
		return writeJSON(w, http.StatusOK, out)
	case KindCreated:
		return writeJSON(w, http.StatusCreated, out)
	case KindError:
		out.Value = errorBody{Error: out.Message}
		return writeJSON(w, ErrorStatus(out.Err), out)
	case KindNotFound:
		return writeText(w, http.StatusNotFound, NotFoundBody)
	case KindMethodNotAllowed:
		return writeText(w, http.StatusMethodNotAllowed, out.Method+" not allowed")
	default:
		return &SerializationError{Kind: out.Kind, Err: fmt.Errorf("unknown outcome kind")}
	}
}

// ErrorStatus maps a handled failure to its HTTP status. With the default
// policies every handled failure is ErrInternal and answers 500; 404 only comes
// from users.empty_status=not_found and 400 only from strict validation.
func ErrorStatus(kind ErrorKind) int {
	switch kind {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, out Outcome) error {
	body, err := json.Marshal(out.Value)
	if err != nil {
		return &SerializationError{Kind: out.Kind, Err: err}
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}

func writeText(w http.ResponseWriter, code int, body string) error {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
