package api

import (
	"net/http"
	"testing"

	"github.com/celerix-dev/celerix-roster/internal/engine"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingController remembers which operation ran.
type recordingController struct {
	called string
}

func (r *recordingController) ListUsers(Request) Outcome {
	r.called = "ListUsers"
	return Ok(nil)
}

func (r *recordingController) AddUser(req Request) Outcome {
	r.called = "AddUser"
	return Created(req.User)
}

func (r *recordingController) GetStatus(Request) Outcome {
	r.called = "GetStatus"
	return Ok(nil)
}

func TestRouter_Resolve(t *testing.T) {
	router := NewRouter(MismatchNotFound)

	tests := []struct {
		method, path string
		want         string
	}{
		{http.MethodGet, "/users", "ListUsers"},
		{http.MethodPost, "/users", "AddUser"},
		{http.MethodGet, "/status", "GetStatus"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			route, _, ok := router.Resolve(tt.method, tt.path)
			require.True(t, ok)

			rc := &recordingController{}
			route.Handle(rc, Request{})
			assert.Equal(t, tt.want, rc.called)
		})
	}
}

func TestRouter_ResolveMisses(t *testing.T) {
	tests := []struct {
		name     string
		mismatch MethodMismatch
		method   string
		path     string
		want     Outcome
	}{
		{"unknown path", MismatchNotFound, http.MethodGet, "/unknown", RouteMiss()},
		{"unknown path with 405 policy", MismatchNotAllowed, http.MethodGet, "/unknown", RouteMiss()},
		{"case sensitive", MismatchNotFound, http.MethodGet, "/Users", RouteMiss()},
		{"trailing slash", MismatchNotFound, http.MethodGet, "/users/", RouteMiss()},
		{"lowercase method", MismatchNotFound, "get", "/users", RouteMiss()},
		{"wrong method as 404", MismatchNotFound, http.MethodPost, "/status", RouteMiss()},
		{"wrong method as 405", MismatchNotAllowed, http.MethodPost, "/status", MethodMiss(http.MethodPost)},
		{"delete users as 405", MismatchNotAllowed, http.MethodDelete, "/users", MethodMiss(http.MethodDelete)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, miss, ok := NewRouter(tt.mismatch).Resolve(tt.method, tt.path)
			assert.False(t, ok)
			assert.Equal(t, tt.want, miss)
		})
	}
}

func TestRouter_DefaultMismatch(t *testing.T) {
	assert.Equal(t, MismatchNotFound, NewRouter("").Mismatch())
}

func TestRouter_Dispatch(t *testing.T) {
	router := NewRouter(MismatchNotFound)
	rc := &recordingController{}
	carol := schema.User{ID: 3, Name: "Carol", Role: "user"}

	out := router.Dispatch(rc, Request{Method: http.MethodPost, Path: "/users", User: carol})
	assert.Equal(t, "AddUser", rc.called)
	assert.Equal(t, Created(carol), out)

	rc = &recordingController{}
	out = router.Dispatch(rc, Request{Method: http.MethodGet, Path: "/nope"})
	assert.Empty(t, rc.called)
	assert.Equal(t, RouteMiss(), out)
}

func TestRouter_DispatchWithHandler(t *testing.T) {
	store := engine.NewMemStore(engine.DefaultUsers())
	h := newTestHandler(store, nil)
	router := NewRouter(MismatchNotFound)

	out := router.Dispatch(h, Request{Method: http.MethodGet, Path: "/users"})
	assert.Equal(t, Ok(engine.DefaultUsers()), out)
}

func TestParseMethodMismatch(t *testing.T) {
	m, err := ParseMethodMismatch("method_not_allowed")
	require.NoError(t, err)
	assert.Equal(t, MismatchNotAllowed, m)

	_, err = ParseMethodMismatch("ignore")
	assert.Error(t, err)
}
