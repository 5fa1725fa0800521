package service

import (
	"context"
	"errors"
	"testing"

	"lexi-chat-be/internal/constant"
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/internal/repository/memory"
	"lexi-chat-be/pkg/llm"
	"lexi-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider records what the service asked for and returns a canned reply.
type stubProvider struct {
	reply       string
	err         error
	calls       int
	lastHistory []llm.Message
	lastOpts    llm.Options
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	p.lastHistory = history
	p.lastOpts = llm.Options{}
	for _, opt := range options {
		opt(&p.lastOpts)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: constant.ChatMessageRoleUser, Content: prompt}}, options...)
}

func newChatFixture(provider llm.LLMProvider, limit int) (IChatService, ISessionService, IUsageService) {
	log := logger.NewNopLogger()
	sessions := NewSessionService(nil, log)
	usage := NewUsageService(memory.NewUsageRepository(), SystemClock{}, limit, log)
	chat := NewChatService(sessions, usage, provider, ModelConfig{
		Default:     "llama3",
		ThinkLonger: "qwen2.5:14b",
	}, log)
	return chat, sessions, usage
}

func TestSendChatRoundTrip(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "Hello! How can I help you today?"}
	chat, sessions, _ := newChatFixture(provider, 5)

	res, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.ChatSessionId)
	assert.Equal(t, "Hi", res.ChatSessionTitle)
	require.NotNil(t, res.Sent)
	require.NotNil(t, res.Reply)
	assert.Equal(t, constant.ChatMessageRoleUser, res.Sent.Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, res.Reply.Role)
	assert.Equal(t, "Hello! How can I help you today?", res.Reply.Text)

	history, err := sessions.GetChatHistory(ctx, res.ChatSessionId)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)

	// System prompt first, the new user message last.
	require.NotEmpty(t, provider.lastHistory)
	assert.Equal(t, constant.ChatMessageRoleSystem, provider.lastHistory[0].Role)
	assert.Equal(t, "Hi", provider.lastHistory[len(provider.lastHistory)-1].Content)
	assert.Equal(t, "llama3", provider.lastOpts.Model)
	assert.Equal(t, constant.StandardMaxTokens, provider.lastOpts.MaxTokens)

	// Gate released for the next send.
	assert.False(t, sessions.Gate(constant.RequestCategorySend).Pending())
	assert.Equal(t, store.OutcomeDone, sessions.Gate(constant.RequestCategorySend).LastOutcome())
}

func TestSendChatContinuesExistingSession(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "Sure."}
	chat, sessions, _ := newChatFixture(provider, 5)

	first, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi"})
	require.NoError(t, err)

	second, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{
		ChatSessionId: &first.ChatSessionId,
		Message:       "Tell me more",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ChatSessionId, second.ChatSessionId)

	history, err := sessions.GetChatHistory(ctx, first.ChatSessionId)
	require.NoError(t, err)
	assert.Len(t, history.Messages, 4)

	// The second request carried the earlier exchange as history.
	assert.Equal(t, 2, provider.calls)
	require.Len(t, provider.lastHistory, 4) // system + 2 window + new message
	assert.Equal(t, "Hi", provider.lastHistory[1].Content)
	assert.Equal(t, "Sure.", provider.lastHistory[2].Content)
}

func TestSendChatBusyGate(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "ok"}
	chat, sessions, _ := newChatFixture(provider, 5)

	require.NoError(t, sessions.Gate(constant.RequestCategorySend).Begin())

	_, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi"})
	var busy *BusyError
	require.ErrorAs(t, err, &busy)
	assert.Equal(t, constant.RequestCategorySend, busy.Category)
	assert.Zero(t, provider.calls)

	// Think-longer uses an independent gate: it still goes through.
	res, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi", ThinkLonger: true})
	require.NoError(t, err)
	assert.NotNil(t, res.Reply)
}

func TestSendChatQuotaExhausted(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "ok"}
	chat, _, usage := newChatFixture(provider, 1)

	usage.Decrement(ctx, "client-a")

	_, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi", ThinkLonger: true})
	var limitErr *dto.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 1, limitErr.Limit)
	assert.Equal(t, 1, limitErr.Used)
	assert.Zero(t, provider.calls)

	// A standard send is not affected by the think-longer quota.
	_, err = chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi"})
	assert.NoError(t, err)
}

func TestSendChatThinkLongerSpendsQuotaUpfront(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{err: errors.New("model overloaded")}
	chat, _, usage := newChatFixture(provider, 5)

	_, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi", ThinkLonger: true})
	require.Error(t, err)

	// Spent even though the request failed.
	assert.Equal(t, 4, usage.GetUsage(ctx, "client-a").Count)
}

func TestSendChatProviderFailure(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{err: errors.New("connection refused")}
	chat, sessions, _ := newChatFixture(provider, 5)

	_, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "Hi"})
	var collab *CollaboratorError
	require.ErrorAs(t, err, &collab)

	// The user's message stays; no assistant message, no retry.
	all := sessions.GetAllSessions(ctx)
	require.Len(t, all, 1)
	history, err := sessions.GetChatHistory(ctx, all[0].Id)
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, history.Messages[0].Role)
	assert.Equal(t, 1, provider.calls)

	gate := sessions.Gate(constant.RequestCategorySend)
	assert.False(t, gate.Pending())
	assert.Equal(t, store.OutcomeFailed, gate.LastOutcome())
}

func TestSendChatModelSelection(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.SendChatRequest
		wantModel string
		wantMax   int
	}{
		{
			name:      "default model",
			req:       dto.SendChatRequest{Message: "Hi"},
			wantModel: "llama3",
			wantMax:   constant.StandardMaxTokens,
		},
		{
			name:      "explicit model honored",
			req:       dto.SendChatRequest{Message: "Hi", Model: "mistral"},
			wantModel: "mistral",
			wantMax:   constant.StandardMaxTokens,
		},
		{
			name:      "think longer overrides explicit model",
			req:       dto.SendChatRequest{Message: "Hi", Model: "mistral", ThinkLonger: true},
			wantModel: "qwen2.5:14b",
			wantMax:   constant.ThinkLongerMaxTokens,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{reply: "ok"}
			chat, _, _ := newChatFixture(provider, 5)

			_, err := chat.SendChat(context.Background(), "client-a", &tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, provider.lastOpts.Model)
			assert.Equal(t, tt.wantMax, provider.lastOpts.MaxTokens)
		})
	}
}

func TestSendChatSystemPromptComposition(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "ok"}
	chat, _, _ := newChatFixture(provider, 5)

	_, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{
		Message:      "Summarize this",
		Tone:         "formal",
		DocumentText: "Chapter one. It was a dark and stormy night.",
	})
	require.NoError(t, err)

	system := provider.lastHistory[0].Content
	assert.Contains(t, system, "formal")
	assert.Contains(t, system, "It was a dark and stormy night.")
}

func TestSendChatImageAttachment(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "A cat."}
	chat, _, _ := newChatFixture(provider, 5)

	_, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{
		Message: "What is in this picture?",
		Attachments: []dto.AttachmentDTO{
			{Id: "doc.pdf-100", Type: "pdf", Name: "doc.pdf"},
			{Id: "cat.png-200", Type: "image", Name: "cat.png", Url: "data:image/png;base64,AAAA"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", provider.lastOpts.ImageURL)
}

func TestSendChatPrivacyModeResponse(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{reply: "ok"}
	chat, sessions, _ := newChatFixture(provider, 5)

	sessions.SetPrivacyMode(ctx, true)

	res, err := chat.SendChat(ctx, "client-a", &dto.SendChatRequest{Message: "secret"})
	require.NoError(t, err)
	assert.True(t, res.Temporary)
	assert.Empty(t, sessions.GetAllSessions(ctx))
}
