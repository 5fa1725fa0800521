package service

import (
	"context"
	"sync"
	"time"

	"lexi-chat-be/internal/constant"
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/mapper"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/pkg/events"
	"lexi-chat-be/pkg/store"

	"github.com/google/uuid"
)

// ISessionService is the single source of truth for all chat sessions, the
// active session pointer, privacy mode and the per-category request gates.
type ISessionService interface {
	CreateNewChat(ctx context.Context) *dto.CreateSessionResponse
	GetAllSessions(ctx context.Context) []*dto.GetAllSessionsResponse
	SetActiveChat(ctx context.Context, id uuid.UUID) error
	ActiveChat(ctx context.Context) *dto.GetChatHistoryResponse
	GetChatHistory(ctx context.Context, id uuid.UUID) (*dto.GetChatHistoryResponse, error)
	AddMessage(ctx context.Context, chatId uuid.UUID, msg *entity.ChatMessage) (uuid.UUID, error)
	TrailingMessages(ctx context.Context, chatId uuid.UUID, limit int) []*entity.ChatMessage
	DeleteChat(ctx context.Context, id uuid.UUID) error
	ClearAllChats(ctx context.Context)
	SetPrivacyMode(ctx context.Context, enabled bool)
	PrivacyMode() bool
	Gate(category string) *store.RequestGate
}

type sessionService struct {
	mu sync.Mutex

	// Persisted collection, most-recent-first. "Persisted" here means owned
	// by the store for the process lifetime; sessions never touch disk.
	sessions []*entity.ChatSession
	activeId uuid.UUID

	privacyMode bool
	temporary   *entity.ChatSession

	gates map[string]*store.RequestGate

	publisher IPublisherService
	logger    logger.ILogger
}

func NewSessionService(publisher IPublisherService, log logger.ILogger) ISessionService {
	s := &sessionService{
		gates:     make(map[string]*store.RequestGate),
		publisher: publisher,
		logger:    log,
	}
	for _, category := range []string{
		constant.RequestCategorySend,
		constant.RequestCategoryThinkLonger,
		constant.RequestCategoryExplain,
	} {
		category := category
		s.gates[category] = store.NewRequestGateWithNotify(func(phase store.Phase, outcome store.Outcome) {
			s.publish(context.Background(), events.TypeRequestState, map[string]interface{}{
				"category": category,
				"phase":    string(phase),
				"outcome":  string(outcome),
			})
		})
	}
	return s
}

// CreateNewChat allocates a fresh session, inserts it at the front and makes
// it active. Creating a chat always turns privacy mode off and discards any
// temporary session.
func (s *sessionService) CreateNewChat(ctx context.Context) *dto.CreateSessionResponse {
	s.mu.Lock()
	session := s.createLocked(constant.DefaultChatTitle)
	s.mu.Unlock()

	s.publish(ctx, events.TypeSessionCreated, map[string]interface{}{
		"chat_session_id": session.Id.String(),
		"title":           session.Title,
	})

	return &dto.CreateSessionResponse{Id: session.Id, Title: session.Title}
}

// createLocked inserts a new session at the front and activates it.
// Caller holds s.mu.
func (s *sessionService) createLocked(title string) *entity.ChatSession {
	s.privacyMode = false
	s.temporary = nil

	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	s.sessions = append([]*entity.ChatSession{session}, s.sessions...)
	s.activeId = session.Id
	return session
}

func (s *sessionService) GetAllSessions(ctx context.Context) []*dto.GetAllSessionsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapper.ToSessionSummaries(s.sessions)
}

// SetActiveChat switches the active pointer to an existing persisted session.
// Switching always turns privacy mode off. Message lists are not mutated.
func (s *sessionService) SetActiveChat(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if s.findLocked(id) == nil {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.privacyMode = false
	s.temporary = nil
	s.activeId = id
	s.mu.Unlock()
	return nil
}

// ActiveChat resolves the effective active chat: the temporary session while
// privacy mode is on, otherwise the session the active pointer names.
// Returns nil when there is no active chat.
func (s *sessionService) ActiveChat(ctx context.Context) *dto.GetChatHistoryResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session := s.effectiveActiveLocked(); session != nil {
		return mapper.ToHistoryResponse(session.Clone())
	}
	return nil
}

func (s *sessionService) effectiveActiveLocked() *entity.ChatSession {
	if s.privacyMode && s.temporary != nil {
		return s.temporary
	}
	if s.activeId == uuid.Nil {
		return nil
	}
	return s.findLocked(s.activeId)
}

func (s *sessionService) GetChatHistory(ctx context.Context, id uuid.UUID) (*dto.GetChatHistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.temporary != nil && s.temporary.Id == id {
		return mapper.ToHistoryResponse(s.temporary.Clone()), nil
	}
	session := s.findLocked(id)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return mapper.ToHistoryResponse(session.Clone()), nil
}

// AddMessage appends a message and returns the id of the session that
// received it.
//
//   - Privacy mode on: the message goes to the temporary session (created on
//     demand); the persisted collection is never touched.
//   - chatId == uuid.Nil: first message of a new conversation; a persisted
//     session is synthesized with its title derived from the message text.
//   - Otherwise the named session is appended to; its title is rewritten
//     exactly once, when the first user message arrives while the title is
//     still the default.
func (s *sessionService) AddMessage(ctx context.Context, chatId uuid.UUID, msg *entity.ChatMessage) (uuid.UUID, error) {
	s.mu.Lock()

	if s.privacyMode {
		if s.temporary == nil {
			s.temporary = &entity.ChatSession{
				Id:        uuid.New(),
				Title:     constant.PrivateChatTitle,
				CreatedAt: time.Now(),
				Temporary: true,
			}
		}
		s.temporary.Messages = append(s.temporary.Messages, msg)
		id := s.temporary.Id
		s.mu.Unlock()

		s.publish(ctx, events.TypeMessageAppended, map[string]interface{}{
			"chat_session_id": id.String(),
			"message_id":      msg.Id.String(),
			"role":            msg.Role,
			"temporary":       true,
		})
		return id, nil
	}

	var session *entity.ChatSession
	if chatId == uuid.Nil {
		session = s.createLocked(deriveTitle(msg.Text))
	} else {
		session = s.findLocked(chatId)
		if session == nil {
			s.mu.Unlock()
			return uuid.Nil, ErrSessionNotFound
		}
		if msg.Role == constant.ChatMessageRoleUser &&
			session.Title == constant.DefaultChatTitle &&
			countUserMessages(session) == 0 {
			session.Title = deriveTitle(msg.Text)
		}
	}
	session.Messages = append(session.Messages, msg)
	id := session.Id
	title := session.Title
	s.mu.Unlock()

	s.publish(ctx, events.TypeMessageAppended, map[string]interface{}{
		"chat_session_id": id.String(),
		"message_id":      msg.Id.String(),
		"role":            msg.Role,
		"title":           title,
	})
	return id, nil
}

// TrailingMessages returns up to limit trailing messages of the resolved
// session: the temporary session while privacy mode is on, the named session
// otherwise. Nil chatId outside privacy mode means a brand-new conversation,
// so there is no history.
func (s *sessionService) TrailingMessages(ctx context.Context, chatId uuid.UUID, limit int) []*entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session *entity.ChatSession
	if s.privacyMode {
		session = s.temporary
	} else if chatId != uuid.Nil {
		session = s.findLocked(chatId)
	}
	if session == nil {
		return nil
	}

	msgs := session.Messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*entity.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// DeleteChat removes a session. When the active session is deleted, the
// first remaining session (in collection order) becomes active.
func (s *sessionService) DeleteChat(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	idx := -1
	for i, session := range s.sessions {
		if session.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if s.activeId == id {
		if len(s.sessions) > 0 {
			s.activeId = s.sessions[0].Id
		} else {
			s.activeId = uuid.Nil
		}
	}
	s.mu.Unlock()

	s.publish(ctx, events.TypeSessionDeleted, map[string]interface{}{
		"chat_session_id": id.String(),
	})
	return nil
}

// ClearAllChats empties the persisted collection and clears the active
// pointer. An in-progress temporary session is left untouched.
func (s *sessionService) ClearAllChats(ctx context.Context) {
	s.mu.Lock()
	s.sessions = nil
	s.activeId = uuid.Nil
	s.mu.Unlock()

	s.publish(ctx, events.TypeSessionsCleared, map[string]interface{}{})
}

// SetPrivacyMode turning on creates a fresh empty temporary session; turning
// off discards it irrecoverably. The persisted collection and active pointer
// are never altered by either transition.
func (s *sessionService) SetPrivacyMode(ctx context.Context, enabled bool) {
	s.mu.Lock()
	s.privacyMode = enabled
	if enabled {
		s.temporary = &entity.ChatSession{
			Id:        uuid.New(),
			Title:     constant.PrivateChatTitle,
			CreatedAt: time.Now(),
			Temporary: true,
		}
	} else {
		s.temporary = nil
	}
	s.mu.Unlock()

	s.publish(ctx, events.TypePrivacyChanged, map[string]interface{}{
		"enabled": enabled,
	})
}

func (s *sessionService) PrivacyMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.privacyMode
}

func (s *sessionService) Gate(category string) *store.RequestGate {
	return s.gates[category]
}

func (s *sessionService) findLocked(id uuid.UUID) *entity.ChatSession {
	for _, session := range s.sessions {
		if session.Id == id {
			return session
		}
	}
	return nil
}

func (s *sessionService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("SessionService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func countUserMessages(session *entity.ChatSession) int {
	n := 0
	for _, m := range session.Messages {
		if m.Role == constant.ChatMessageRoleUser {
			n++
		}
	}
	return n
}

// deriveTitle builds a session title from the first user message: at most 30
// characters, ellipsis-suffixed when truncated.
func deriveTitle(text string) string {
	if text == "" {
		return constant.DefaultChatTitle
	}
	runes := []rune(text)
	if len(runes) <= constant.ChatTitleMaxLength {
		return text
	}
	return string(runes[:constant.ChatTitleMaxLength]) + "..."
}
