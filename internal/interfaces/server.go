package interfaces

import (
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	// AddRoute registers a handler for the given HTTP method and pattern.
	AddRoute(method, pattern string, handler func(w http.ResponseWriter, r *http.Request)) error
	// SetNotFoundHandler installs the handler for unmatched routes and methods.
	SetNotFoundHandler(handler func(w http.ResponseWriter, r *http.Request))
	ListenAndServe() error
}
