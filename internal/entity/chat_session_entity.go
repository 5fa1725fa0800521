package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is a single conversation thread. Messages are append-only and
// kept in send order. Temporary sessions exist only while privacy mode is on
// and are never inserted into the persisted collection.
type ChatSession struct {
	Id        uuid.UUID
	Title     string
	Messages  []*ChatMessage
	CreatedAt time.Time
	Temporary bool
}

// Clone returns a shallow copy with its own message slice, so readers never
// observe a partially mutated session.
func (s *ChatSession) Clone() *ChatSession {
	cp := *s
	cp.Messages = make([]*ChatMessage, len(s.Messages))
	copy(cp.Messages, s.Messages)
	return &cp
}

// FindMessage resolves a soft message reference by id. Returns nil when the
// referenced message is absent; callers degrade to the denormalized snapshot.
func (s *ChatSession) FindMessage(id uuid.UUID) *ChatMessage {
	for _, m := range s.Messages {
		if m.Id == id {
			return m
		}
	}
	return nil
}
