// Package session holds the state of the logged-in agent.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mkoiev/gridpeek/internal/app"
)

// Session represents the agent's session on the grid.
type Session struct {
	mu      sync.RWMutex
	agentID uuid.UUID
	name    string
	godlike bool
}

var _ app.AgentSession = (*Session)(nil)

// New returns a new Session.
func New(agentID uuid.UUID, name string) *Session {
	return &Session{agentID: agentID, name: name}
}

// AgentID returns the agent's ID.
func (s *Session) AgentID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agentID
}

// Name returns the agent's display name.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// IsGodlike reports whether the agent has elevated operator privileges.
// Godlike agents bypass some UI suppression rules, e.g. the loading label
// on nearly sharp thumbnails.
func (s *Session) IsGodlike() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.godlike
}

// SetGodlike grants or revokes elevated operator privileges.
func (s *Session) SetGodlike(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.godlike = v
}
