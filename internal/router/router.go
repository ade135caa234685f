// Package router implements a small method-and-pattern HTTP dispatcher.
// Patterns are "/"-separated sequences of literal segments and ":name"
// parameter segments, e.g. "/users/:id".
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type paramsKey struct{}

// route associates one pattern with a handler per HTTP method.
type route struct {
	pattern  string
	segments []string
	handlers map[string]http.Handler
}

// Router matches incoming requests against a fixed route table. The table is
// built once at startup and is immutable afterwards; matching itself keeps no
// state across requests.
type Router struct {
	routes []*route
}

// New creates an empty Router.
func New() *Router {
	return &Router{}
}

// Handle registers handler for the given method and pattern. Registering the
// same pattern again adds the method to the existing entry, so the route
// table keeps one entry per pattern.
func (rt *Router) Handle(method, pattern string, handler http.Handler) {
	for _, r := range rt.routes {
		if r.pattern == pattern {
			r.handlers[method] = handler
			return
		}
	}
	rt.routes = append(rt.routes, &route{
		pattern:  pattern,
		segments: splitPath(pattern),
		handlers: map[string]http.Handler{method: handler},
	})
}

// HandleFunc registers a handler function for the given method and pattern.
func (rt *Router) HandleFunc(method, pattern string, handler http.HandlerFunc) {
	rt.Handle(method, pattern, handler)
}

// ServeHTTP dispatches the request to the first pattern that fully matches
// its path. A matched pattern without a handler for the request method yields
// 405; no match at all yields 404. OPTIONS requests short-circuit to 204
// before any matching. CORS headers go on every response.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	segments := splitPath(r.URL.Path)
	for _, route := range rt.routes {
		params, ok := match(route.segments, segments)
		if !ok {
			continue
		}
		handler, ok := route.handlers[r.Method]
		if !ok {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		ctx := context.WithValue(r.Context(), paramsKey{}, params)
		handler.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	writeError(w, http.StatusNotFound, "Not Found")
}

// Param returns the value bound to name while matching the current request,
// or "" when the pattern had no such parameter.
func Param(r *http.Request, name string) string {
	params, _ := r.Context().Value(paramsKey{}).(map[string]string)
	return params[name]
}

// match binds path segments against pattern segments. Segment counts must be
// equal; ":name" segments bind into the parameter map, literals must compare
// equal.
func match(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := make(map[string]string)
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = path[i]
		} else if p != path[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
