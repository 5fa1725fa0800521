package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"lexi-chat-be/internal/constant"
	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService() ISessionService {
	return NewSessionService(nil, logger.NewNopLogger())
}

func userMessage(text string) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text verbatim",
			text: "Hi",
			want: "Hi",
		},
		{
			name: "empty text falls back to default",
			text: "",
			want: constant.DefaultChatTitle,
		},
		{
			name: "exactly thirty characters untouched",
			text: strings.Repeat("a", 30),
			want: strings.Repeat("a", 30),
		},
		{
			name: "long text truncated with ellipsis",
			text: strings.Repeat("a", 31),
			want: strings.Repeat("a", 30) + "...",
		},
		{
			name: "truncation counts runes not bytes",
			text: strings.Repeat("é", 31),
			want: strings.Repeat("é", 30) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveTitle(tt.text)
			if got != tt.want {
				t.Errorf("deriveTitle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCreateNewChatOrdering(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	first := svc.CreateNewChat(ctx)
	second := svc.CreateNewChat(ctx)
	third := svc.CreateNewChat(ctx)

	sessions := svc.GetAllSessions(ctx)
	require.Len(t, sessions, 3)

	// Most recent first.
	assert.Equal(t, third.Id, sessions[0].Id)
	assert.Equal(t, second.Id, sessions[1].Id)
	assert.Equal(t, first.Id, sessions[2].Id)

	active := svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Equal(t, third.Id, active.Id)
}

func TestAddMessageSynthesizesSession(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	id, err := svc.AddMessage(ctx, uuid.Nil, userMessage("What are React Hooks and why do they matter?"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	history, err := svc.GetChatHistory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "What are React Hooks and why d...", history.Title)
	assert.Len(t, history.Messages, 1)
}

func TestTitleRewrittenExactlyOnce(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	created := svc.CreateNewChat(ctx)
	assert.Equal(t, constant.DefaultChatTitle, created.Title)

	_, err := svc.AddMessage(ctx, created.Id, userMessage("First question"))
	require.NoError(t, err)

	history, err := svc.GetChatHistory(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "First question", history.Title)

	_, err = svc.AddMessage(ctx, created.Id, userMessage("Second question"))
	require.NoError(t, err)

	history, err = svc.GetChatHistory(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "First question", history.Title)
}

func TestAddMessageUnknownSession(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.AddMessage(context.Background(), uuid.New(), userMessage("hello"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteActivePromotesFirstRemaining(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	a := svc.CreateNewChat(ctx)
	b := svc.CreateNewChat(ctx)
	c := svc.CreateNewChat(ctx) // active, collection order [c, b, a]

	require.NoError(t, svc.DeleteChat(ctx, c.Id))

	active := svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Equal(t, b.Id, active.Id)

	// Deleting a non-active session leaves the pointer alone.
	require.NoError(t, svc.DeleteChat(ctx, a.Id))
	active = svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Equal(t, b.Id, active.Id)

	require.NoError(t, svc.DeleteChat(ctx, b.Id))
	assert.Nil(t, svc.ActiveChat(ctx))

	assert.ErrorIs(t, svc.DeleteChat(ctx, b.Id), ErrSessionNotFound)
}

func TestClearAllChats(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	svc.CreateNewChat(ctx)
	svc.CreateNewChat(ctx)

	svc.ClearAllChats(ctx)

	assert.Empty(t, svc.GetAllSessions(ctx))
	assert.Nil(t, svc.ActiveChat(ctx))
}

func TestPrivacyModeIsolation(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	persisted := svc.CreateNewChat(ctx)

	svc.SetPrivacyMode(ctx, true)
	assert.True(t, svc.PrivacyMode())

	// Appends land in the temporary session even when a persisted id is named.
	tempId, err := svc.AddMessage(ctx, persisted.Id, userMessage("secret"))
	require.NoError(t, err)
	assert.NotEqual(t, persisted.Id, tempId)

	active := svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Equal(t, tempId, active.Id)
	assert.True(t, active.Temporary)
	assert.Equal(t, constant.PrivateChatTitle, active.Title)

	// The persisted collection never sees the temporary session.
	sessions := svc.GetAllSessions(ctx)
	require.Len(t, sessions, 1)
	assert.Equal(t, persisted.Id, sessions[0].Id)

	history, err := svc.GetChatHistory(ctx, persisted.Id)
	require.NoError(t, err)
	assert.Empty(t, history.Messages)

	// Turning privacy off discards the temporary session irrecoverably.
	svc.SetPrivacyMode(ctx, false)
	_, err = svc.GetChatHistory(ctx, tempId)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	active = svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Equal(t, persisted.Id, active.Id)
}

func TestPrivacyToggleResetsTemporary(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	svc.SetPrivacyMode(ctx, true)
	firstId, err := svc.AddMessage(ctx, uuid.Nil, userMessage("one"))
	require.NoError(t, err)

	// Re-enabling starts a fresh temporary session.
	svc.SetPrivacyMode(ctx, true)
	secondId, err := svc.AddMessage(ctx, uuid.Nil, userMessage("two"))
	require.NoError(t, err)
	assert.NotEqual(t, firstId, secondId)

	active := svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Len(t, active.Messages, 1)
}

func TestCreateNewChatExitsPrivacyMode(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	svc.SetPrivacyMode(ctx, true)
	created := svc.CreateNewChat(ctx)

	assert.False(t, svc.PrivacyMode())
	active := svc.ActiveChat(ctx)
	require.NotNil(t, active)
	assert.Equal(t, created.Id, active.Id)
}

func TestTrailingMessagesWindow(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	created := svc.CreateNewChat(ctx)
	for i := 0; i < 15; i++ {
		_, err := svc.AddMessage(ctx, created.Id, userMessage(fmt.Sprintf("message %d", i)))
		require.NoError(t, err)
	}

	window := svc.TrailingMessages(ctx, created.Id, 10)
	require.Len(t, window, 10)
	assert.Equal(t, "message 5", window[0].Text)
	assert.Equal(t, "message 14", window[9].Text)

	// A brand-new conversation has no history.
	assert.Nil(t, svc.TrailingMessages(ctx, uuid.Nil, 10))
}

func TestHistoryIsACopy(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	created := svc.CreateNewChat(ctx)
	_, err := svc.AddMessage(ctx, created.Id, userMessage("original"))
	require.NoError(t, err)

	history, err := svc.GetChatHistory(ctx, created.Id)
	require.NoError(t, err)
	history.Messages[0].Text = "mutated"

	fresh, err := svc.GetChatHistory(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "original", fresh.Messages[0].Text)
}
