package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/venusquiz/internal/session"
)

// registry holds the open sessions by id.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*session.Controller
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session.Controller)}
}

func (r *registry) add(c *session.Controller) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()
	return id
}

func (r *registry) get(id string) (*session.Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	return c, ok
}

// remove closes and forgets the session.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		c.Close()
	}
	return ok
}

func (r *registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*session.Controller)
	r.mu.Unlock()
	for _, c := range sessions {
		c.Close()
	}
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
