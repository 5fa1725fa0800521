package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once appended to a session.
type ChatMessage struct {
	Id          uuid.UUID
	Role        string // "user" | "assistant"
	Text        string
	Attachments []*Attachment
	Tone        string
	// InReplyTo is a non-owning reference to another message in the same
	// session. ReplyMeta keeps a snapshot of the original text so the
	// reference can dangle after the target is gone.
	InReplyTo *uuid.UUID
	ReplyMeta *ReplyMetadata
	CreatedAt time.Time
}

type ReplyMetadata struct {
	IsReplying   bool
	OriginalText string
}
