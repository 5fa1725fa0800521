package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lexi-chat-be/internal/constant"
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// IAssistService hosts the two auxiliary collaborators: structured
// explanations of selected content and the starter-question carousel.
type IAssistService interface {
	Explain(ctx context.Context, req *dto.ExplainRequest) (*dto.ExplainResponse, error)
	Suggestions(ctx context.Context) *dto.SuggestionsResponse
}

type assistService struct {
	sessions ISessionService
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewAssistService(sessions ISessionService, provider llm.LLMProvider, log logger.ILogger) IAssistService {
	return &assistService{
		sessions: sessions,
		provider: provider,
		logger:   log,
	}
}

// Explain resolves the explanation subject (explicit text, a message by id,
// or an attachment by id) and asks the provider for a structured explanation.
func (s *assistService) Explain(ctx context.Context, req *dto.ExplainRequest) (*dto.ExplainResponse, error) {
	gate := s.sessions.Gate(constant.RequestCategoryExplain)
	if err := gate.Begin(); err != nil {
		return nil, &BusyError{Category: constant.RequestCategoryExplain}
	}
	failed := true
	defer func() { gate.Finish(failed) }()

	subject := s.resolveSubject(ctx, req)
	if subject == "" {
		return nil, fmt.Errorf("nothing to explain: provide text, a message id or an attachment id")
	}

	explanation, err := s.provider.Generate(ctx, fmt.Sprintf(constant.ExplainPrompt, subject))
	if err != nil {
		return nil, &CollaboratorError{Op: "explain", Err: err}
	}

	failed = false
	return &dto.ExplainResponse{Explanation: explanation}, nil
}

// resolveSubject prefers the referenced message's text over the raw text
// field, degrading gracefully when the id no longer resolves.
func (s *assistService) resolveSubject(ctx context.Context, req *dto.ExplainRequest) string {
	if req.TargetMessageId != "" {
		if id, err := uuid.Parse(req.TargetMessageId); err == nil {
			if text := s.findMessageText(ctx, id); text != "" {
				return text
			}
		}
	}
	if req.AttachmentId != "" && req.Text == "" {
		return fmt.Sprintf("the attached file %q", req.AttachmentId)
	}
	return req.Text
}

func (s *assistService) findMessageText(ctx context.Context, id uuid.UUID) string {
	if active := s.sessions.ActiveChat(ctx); active != nil {
		for _, m := range active.Messages {
			if m.Id == id {
				return m.Text
			}
		}
	}
	for _, summary := range s.sessions.GetAllSessions(ctx) {
		history, err := s.sessions.GetChatHistory(ctx, summary.Id)
		if err != nil {
			continue
		}
		for _, m := range history.Messages {
			if m.Id == id {
				return m.Text
			}
		}
	}
	return ""
}

// Suggestions asks the provider for starter questions. Any failure serves
// the hardcoded fallback set instead; this call never errors.
func (s *assistService) Suggestions(ctx context.Context) *dto.SuggestionsResponse {
	raw, err := s.provider.Generate(ctx, constant.SuggestionPrompt)
	if err != nil {
		s.logger.Warn("AssistService", "Suggestions collaborator failed, serving fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackSuggestions()
	}

	suggestions, err := parseSuggestionList(raw)
	if err != nil || len(suggestions) == 0 {
		s.logger.Warn("AssistService", "Suggestions response unusable, serving fallback", map[string]interface{}{
			"raw": raw,
		})
		return fallbackSuggestions()
	}

	return &dto.SuggestionsResponse{Suggestions: suggestions}
}

func fallbackSuggestions() *dto.SuggestionsResponse {
	out := make([]string, len(constant.FallbackSuggestions))
	copy(out, constant.FallbackSuggestions)
	return &dto.SuggestionsResponse{Suggestions: out, Fallback: true}
}

// parseSuggestionList tolerates the code fences some models wrap JSON in.
func parseSuggestionList(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var suggestions []string
	if err := json.Unmarshal([]byte(trimmed), &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
