package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type GetAllSessionsResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

type SetActiveChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

type SetPrivacyModeRequest struct {
	Enabled bool `json:"enabled"`
}

type PrivacyModeResponse struct {
	Enabled bool `json:"enabled"`
}

type AttachmentDTO struct {
	Id   string `json:"id"`
	Type string `json:"type" validate:"omitempty,oneof=pdf image docx txt"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Url  string `json:"url,omitempty"`
}

type SendChatRequest struct {
	// ChatSessionId is omitted for the first message of a new conversation.
	ChatSessionId *uuid.UUID      `json:"chat_session_id,omitempty"`
	Message       string          `json:"message"`
	Attachments   []AttachmentDTO `json:"attachments,omitempty" validate:"max=10"`
	DocumentText  string          `json:"document_text,omitempty"`
	ThinkLonger   bool            `json:"think_longer,omitempty"`
	Tone          string          `json:"tone,omitempty"`
	Model         string          `json:"model,omitempty"`
	// Reply threading: soft reference plus denormalized snapshot.
	InReplyTo      *uuid.UUID `json:"in_reply_to,omitempty"`
	ReplyingToText string     `json:"replying_to_text,omitempty"`
}

type ChatMessageDTO struct {
	Id          uuid.UUID       `json:"id"`
	Role        string          `json:"role"`
	Text        string          `json:"text"`
	Tone        string          `json:"tone,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
	InReplyTo   *uuid.UUID      `json:"in_reply_to,omitempty"`
	ReplyingTo  string          `json:"replying_to,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID       `json:"chat_session_id"`
	ChatSessionTitle string          `json:"title"`
	Temporary        bool            `json:"temporary,omitempty"`
	Sent             *ChatMessageDTO `json:"sent"`
	Reply            *ChatMessageDTO `json:"reply"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Temporary bool             `json:"temporary,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Messages  []ChatMessageDTO `json:"messages"`
}
