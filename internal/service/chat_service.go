package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lexi-chat-be/internal/constant"
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/mapper"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// ModelConfig resolves which model identifier each request category uses.
// ThinkLonger names the higher-capability variant the think-longer flag
// switches to regardless of the requested model.
type ModelConfig struct {
	Default     string
	ThinkLonger string
}

// IChatService assembles one outgoing request to the LLM collaborator from
// composer state and records both halves of the exchange.
type IChatService interface {
	SendChat(ctx context.Context, clientId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	sessions ISessionService
	usage    IUsageService
	provider llm.LLMProvider
	models   ModelConfig
	logger   logger.ILogger
}

func NewChatService(
	sessions ISessionService,
	usage IUsageService,
	provider llm.LLMProvider,
	models ModelConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions: sessions,
		usage:    usage,
		provider: provider,
		models:   models,
		logger:   log,
	}
}

// SendChat appends the user message, issues exactly one provider request and
// appends exactly one assistant message on success. On failure nothing is
// rolled back: the user's message stays in the session and no retry is made.
func (s *chatService) SendChat(ctx context.Context, clientId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	category := constant.RequestCategorySend
	if req.ThinkLonger {
		category = constant.RequestCategoryThinkLonger

		// Checked precondition, not a collaborator failure: blocked before
		// any request is attempted.
		if s.usage.IsLimitReached(ctx, clientId) {
			u := s.usage.GetUsage(ctx, clientId)
			return nil, &dto.LimitExceededError{
				Limit: u.Limit,
				Used:  u.Limit - u.Count,
				Date:  u.Date,
			}
		}
	}

	gate := s.sessions.Gate(category)
	if err := gate.Begin(); err != nil {
		return nil, &BusyError{Category: category}
	}
	failed := true
	defer func() { gate.Finish(failed) }()

	if req.ThinkLonger {
		// Optimistic decrement: spent before the outcome is known.
		s.usage.Decrement(ctx, clientId)
	}

	chatId := uuid.Nil
	if req.ChatSessionId != nil {
		chatId = *req.ChatSessionId
	}

	// History window is captured before the new message is appended.
	window := s.sessions.TrailingMessages(ctx, chatId, constant.HistoryWindow)

	userMsg := s.buildUserMessage(req)
	usedId, err := s.sessions.AddMessage(ctx, chatId, userMsg)
	if err != nil {
		return nil, err
	}

	reply, err := s.invokeProvider(ctx, req, window)
	if err != nil {
		s.logger.Error("ChatService", "LLM collaborator request failed", map[string]interface{}{
			"chat_session_id": usedId.String(),
			"think_longer":    req.ThinkLonger,
			"error":           err.Error(),
		})
		return nil, &CollaboratorError{Op: "chat", Err: err}
	}

	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleAssistant,
		Text:      reply,
		CreatedAt: time.Now(),
	}
	if _, err := s.sessions.AddMessage(ctx, usedId, assistantMsg); err != nil {
		return nil, err
	}

	history, err := s.sessions.GetChatHistory(ctx, usedId)
	if err != nil {
		return nil, err
	}

	failed = false
	sent := mapper.ToChatMessageDTO(userMsg)
	replied := mapper.ToChatMessageDTO(assistantMsg)
	return &dto.SendChatResponse{
		ChatSessionId:    usedId,
		ChatSessionTitle: history.Title,
		Temporary:        history.Temporary,
		Sent:             &sent,
		Reply:            &replied,
	}, nil
}

func (s *chatService) buildUserMessage(req *dto.SendChatRequest) *entity.ChatMessage {
	msg := &entity.ChatMessage{
		Id:          uuid.New(),
		Role:        constant.ChatMessageRoleUser,
		Text:        req.Message,
		Attachments: mapper.ToAttachmentEntities(req.Attachments),
		Tone:        req.Tone,
		CreatedAt:   time.Now(),
	}
	if req.InReplyTo != nil {
		msg.InReplyTo = req.InReplyTo
		msg.ReplyMeta = &entity.ReplyMetadata{
			IsReplying:   true,
			OriginalText: req.ReplyingToText,
		}
	}
	return msg
}

// invokeProvider issues the single LLM request for this send: system prompt
// (tone, think-longer and document context folded in), the bounded history
// window, then the new user message.
func (s *chatService) invokeProvider(ctx context.Context, req *dto.SendChatRequest, window []*entity.ChatMessage) (string, error) {
	messages := make([]llm.Message, 0, len(window)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: s.buildSystemPrompt(req),
	})
	for _, m := range window {
		messages = append(messages, llm.Message{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: req.Message,
	})

	opts := []llm.Option{
		llm.WithModel(s.resolveModel(req)),
		llm.WithMaxTokens(s.resolveMaxTokens(req)),
	}
	if imageUrl := firstImageUrl(req.Attachments); imageUrl != "" {
		opts = append(opts, llm.WithImage(imageUrl))
	}

	return s.provider.Chat(ctx, messages, opts...)
}

func (s *chatService) buildSystemPrompt(req *dto.SendChatRequest) string {
	parts := []string{constant.ChatSystemPrompt}
	if req.Tone != "" {
		parts = append(parts, fmt.Sprintf(constant.ToneInstructionTemplate, req.Tone))
	}
	if req.ThinkLonger {
		parts = append(parts, constant.ThinkLongerInstruction)
	}
	if req.DocumentText != "" {
		parts = append(parts, fmt.Sprintf(constant.DocumentContextTemplate, req.DocumentText))
	}
	return strings.Join(parts, "\n\n")
}

// resolveModel: think-longer overrides any explicit model choice with the
// higher-capability variant.
func (s *chatService) resolveModel(req *dto.SendChatRequest) string {
	if req.ThinkLonger {
		return s.models.ThinkLonger
	}
	if req.Model != "" {
		return req.Model
	}
	return s.models.Default
}

func (s *chatService) resolveMaxTokens(req *dto.SendChatRequest) int {
	if req.ThinkLonger {
		return constant.ThinkLongerMaxTokens
	}
	return constant.StandardMaxTokens
}

// firstImageUrl picks the first image-type attachment carrying a displayable
// reference; only one image rides along per request.
func firstImageUrl(attachments []dto.AttachmentDTO) string {
	for _, a := range attachments {
		if a.Type == entity.AttachmentTypeImage && a.Url != "" {
			return a.Url
		}
	}
	return ""
}
