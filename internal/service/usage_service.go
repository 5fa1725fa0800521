package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/internal/repository/contract"
	"lexi-chat-be/internal/repository/memory"
)

// Clock is injected so day-rollover is testable without wall-clock waits.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IUsageService enforces the per-calendar-day cap on the think-longer
// feature. Decrement is optimistic (called before the LLM request) and the
// caller is responsible for checking IsLimitReached first.
type IUsageService interface {
	GetUsage(ctx context.Context, clientId string) *dto.UsageResponse
	Decrement(ctx context.Context, clientId string) *dto.UsageResponse
	IsLimitReached(ctx context.Context, clientId string) bool
}

type usageService struct {
	mu       sync.Mutex
	repo     contract.UsageRepository
	fallback contract.UsageRepository
	degraded bool
	clock    Clock
	limit    int
	logger   logger.ILogger
}

func NewUsageService(repo contract.UsageRepository, clock Clock, limit int, log logger.ILogger) IUsageService {
	return &usageService{
		repo:     repo,
		fallback: memory.NewUsageRepository(),
		clock:    clock,
		limit:    limit,
		logger:   log,
	}
}

// GetUsage returns the remaining count after applying the day-rollover rule:
// a stored date that is not today is reset to a full quota and persisted
// before the read is honored.
func (s *usageService) GetUsage(ctx context.Context, clientId string) *dto.UsageResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage := s.loadLocked(ctx, clientId)
	return s.toResponse(usage)
}

// Decrement reduces the remaining count by one, floored at zero. It persists
// the new state and never fails: a storage write error degrades the tracker
// to its in-memory store instead of surfacing.
func (s *usageService) Decrement(ctx context.Context, clientId string) *dto.UsageResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	usage := s.loadLocked(ctx, clientId)
	if usage.Count > 0 {
		usage.Count--
	}
	s.saveLocked(ctx, clientId, usage)
	return s.toResponse(usage)
}

// IsLimitReached is fail-safe: any state where the quota cannot be
// established counts as limited.
func (s *usageService) IsLimitReached(ctx context.Context, clientId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage := s.loadLocked(ctx, clientId)
	if usage == nil {
		return true
	}
	return usage.Count <= 0
}

// loadLocked reads the record through the active store, applying rollover
// and first-use initialization. Storage failures flip the service onto the
// in-memory fallback for the rest of the process lifetime.
func (s *usageService) loadLocked(ctx context.Context, clientId string) *entity.Usage {
	today := s.clock.Now().Format("2006-01-02")

	usage, err := s.activeRepo().Get(ctx, clientId)
	if err != nil && !errors.Is(err, contract.ErrUsageNotFound) {
		s.degrade(err)
		usage, err = s.activeRepo().Get(ctx, clientId)
	}

	if errors.Is(err, contract.ErrUsageNotFound) || usage == nil || usage.Date != today {
		usage = &entity.Usage{Count: s.limit, Date: today}
		s.saveLocked(ctx, clientId, usage)
	}
	return usage
}

func (s *usageService) saveLocked(ctx context.Context, clientId string, usage *entity.Usage) {
	if err := s.activeRepo().Save(ctx, clientId, usage); err != nil {
		s.degrade(err)
		// The in-memory store cannot fail.
		_ = s.activeRepo().Save(ctx, clientId, usage)
	}
}

func (s *usageService) activeRepo() contract.UsageRepository {
	if s.degraded || s.repo == nil {
		return s.fallback
	}
	return s.repo
}

func (s *usageService) degrade(cause error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.logger.Warn("UsageService", "Durable usage storage unavailable, falling back to in-memory quota", map[string]interface{}{
		"error": cause.Error(),
	})
}

func (s *usageService) toResponse(usage *entity.Usage) *dto.UsageResponse {
	return &dto.UsageResponse{
		Count:        usage.Count,
		Date:         usage.Date,
		Limit:        s.limit,
		LimitReached: usage.Count <= 0,
	}
}
