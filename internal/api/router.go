package api

import (
	"fmt"
	"net/http"
)

// MethodMismatch decides how a known path requested with an unrouted method is answered.
type MethodMismatch string

const (
	// MismatchNotFound answers with the routing-miss 404.
	MismatchNotFound MethodMismatch = "not_found"
	// MismatchNotAllowed answers with 405 "<METHOD> not allowed".
	MismatchNotAllowed MethodMismatch = "method_not_allowed"
)

// ParseMethodMismatch converts a config string into a MethodMismatch.
func ParseMethodMismatch(s string) (MethodMismatch, error) {
	switch m := MethodMismatch(s); m {
	case MismatchNotFound, MismatchNotAllowed:
		return m, nil
	default:
		return "", fmt.Errorf("unknown method mismatch policy %q", s)
	}
}

// Route binds one (method, path) pair to a Controller operation.
type Route struct {
	Method string
	Path   string
	// Body is set when the request body must be decoded into Request.User.
	Body   bool
	Handle func(Controller, Request) Outcome
}

// Routes is the routing table. Matching is exact and case-sensitive.
func Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/users", Handle: Controller.ListUsers},
		{Method: http.MethodPost, Path: "/users", Body: true, Handle: Controller.AddUser},
		{Method: http.MethodGet, Path: "/status", Handle: Controller.GetStatus},
	}
}

// Router resolves requests against the routing table. It holds no request state.
type Router struct {
	routes   []Route
	mismatch MethodMismatch
}

func NewRouter(mismatch MethodMismatch) *Router {
	if mismatch == "" {
		mismatch = MismatchNotFound
	}
	return &Router{routes: Routes(), mismatch: mismatch}
}

// Routes returns the table the router matches against.
func (r *Router) Routes() []Route {
	return r.routes
}

// Mismatch returns the method mismatch policy in effect.
func (r *Router) Mismatch() MethodMismatch {
	return r.mismatch
}

// Resolve finds the route for (method, path). When ok is false, miss is the
// sentinel outcome to render instead.
func (r *Router) Resolve(method, path string) (route Route, miss Outcome, ok bool) {
	pathKnown := false
	for _, rt := range r.routes {
		if rt.Path != path {
			continue
		}
		if rt.Method == method {
			return rt, Outcome{}, true
		}
		pathKnown = true
	}
	if pathKnown && r.mismatch == MismatchNotAllowed {
		return Route{}, MethodMiss(method), false
	}
	return Route{}, RouteMiss(), false
}

// Dispatch resolves req and runs the matched operation on c.
func (r *Router) Dispatch(c Controller, req Request) Outcome {
	route, miss, ok := r.Resolve(req.Method, req.Path)
	if !ok {
		return miss
	}
	return route.Handle(c, req)
}
