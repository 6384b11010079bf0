package session_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mkoiev/gridpeek/internal/app/session"
)

func TestSession(t *testing.T) {
	t.Run("holds agent identity", func(t *testing.T) {
		id := uuid.New()
		s := session.New(id, "some agent")
		assert.Equal(t, id, s.AgentID())
		assert.Equal(t, "some agent", s.Name())
	})
	t.Run("agents are not godlike by default", func(t *testing.T) {
		s := session.New(uuid.New(), "some agent")
		assert.False(t, s.IsGodlike())
	})
	t.Run("godlike privileges can be granted and revoked", func(t *testing.T) {
		s := session.New(uuid.New(), "some agent")
		s.SetGodlike(true)
		assert.True(t, s.IsGodlike())
		s.SetGodlike(false)
		assert.False(t, s.IsGodlike())
	})
}
