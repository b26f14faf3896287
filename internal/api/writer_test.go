package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/celerix-dev/celerix-roster/internal/service"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter(t *testing.T) {
	tests := []struct {
		name        string
		out         Outcome
		wantCode    int
		wantBody    string
		contentType string
	}{
		{
			name:        "ok",
			out:         Ok(schema.Status{ID: 1, Status: "Active", Time: "1:02:03 PM"}),
			wantCode:    http.StatusOK,
			wantBody:    `{"id":1,"status":"Active","time":"1:02:03 PM"}`,
			contentType: contentTypeJSON,
		},
		{
			name:        "created",
			out:         Created(schema.User{ID: 3, Name: "Carol", Role: "user"}),
			wantCode:    http.StatusCreated,
			wantBody:    `{"id":3,"name":"Carol","role":"user"}`,
			contentType: contentTypeJSON,
		},
		{
			name:        "empty list",
			out:         Ok([]schema.User{}),
			wantCode:    http.StatusOK,
			wantBody:    `[]`,
			contentType: contentTypeJSON,
		},
		{
			name:        "internal error",
			out:         Failure(ErrInternal, "No users found"),
			wantCode:    http.StatusInternalServerError,
			wantBody:    `{"error":"No users found"}`,
			contentType: contentTypeJSON,
		},
		{
			name:        "not found error",
			out:         Failure(ErrNotFound, "No users found"),
			wantCode:    http.StatusNotFound,
			wantBody:    `{"error":"No users found"}`,
			contentType: contentTypeJSON,
		},
		{
			name:        "invalid",
			out:         Failure(ErrInvalid, "name: failed on the 'required' rule"),
			wantCode:    http.StatusBadRequest,
			wantBody:    `{"error":"name: failed on the 'required' rule"}`,
			contentType: contentTypeJSON,
		},
		{
			name:        "route miss",
			out:         RouteMiss(),
			wantCode:    http.StatusNotFound,
			wantBody:    "Sorry can't find that!",
			contentType: contentTypeText,
		},
		{
			name:        "method miss",
			out:         MethodMiss("PUT"),
			wantCode:    http.StatusMethodNotAllowed,
			wantBody:    "PUT not allowed",
			contentType: contentTypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, JSONWriter{}.Write(w, tt.out))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
		})
	}
}

func TestJSONWriter_SerializationError(t *testing.T) {
	w := httptest.NewRecorder()

	err := JSONWriter{}.Write(w, Ok(map[string]any{"bad": make(chan int)}))
	require.Error(t, err)

	var serr *SerializationError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, KindOK, serr.Kind)
	assert.Zero(t, w.Body.Len(), "nothing may be written on a serialization failure")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ok", KindOK.String())
	assert.Equal(t, "method_not_allowed", KindMethodNotAllowed.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(ErrInternal))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(ErrInvalid))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(""))

	// a default handler only ever reports ErrInternal
	h := &Handler{Users: &fakeUsers{err: &service.NotFoundError{Resource: "users", Message: service.ErrNoUsers}}}
	out := h.ListUsers(Request{})
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(out.Err))
}
