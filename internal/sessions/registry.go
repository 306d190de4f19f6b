// Package sessions holds the process-lifetime session state. Tokens live
// until logout or process exit; there is no expiry and no persistence.
package sessions

import (
	"sync"

	"github.com/haguru/torii/internal/interfaces"
)

// Registry is a mutex-guarded token -> username mapping.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewRegistry creates an empty session registry.
func NewRegistry() interfaces.SessionRegistry {
	return &Registry{
		sessions: make(map[string]string),
	}
}

// Put registers the token against the username.
func (r *Registry) Put(token, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = username
}

// Get returns the username owning the token, if any.
func (r *Registry) Get(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username, ok := r.sessions[token]
	return username, ok
}

// Remove drops the token. No-op if the token is unknown.
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
