package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/internal/repository/contract"
	"lexi-chat-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// brokenRepo fails every operation, simulating unreachable durable storage.
type brokenRepo struct{}

func (brokenRepo) Get(ctx context.Context, clientId string) (*entity.Usage, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepo) Save(ctx context.Context, clientId string, usage *entity.Usage) error {
	return errors.New("connection refused")
}

func TestUsageFirstUseInitializes(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := NewUsageService(memory.NewUsageRepository(), clock, 5, logger.NewNopLogger())

	usage := svc.GetUsage(context.Background(), "client-a")
	assert.Equal(t, 5, usage.Count)
	assert.Equal(t, "2026-03-14", usage.Date)
	assert.False(t, usage.LimitReached)
}

func TestUsageDecrementFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := NewUsageService(memory.NewUsageRepository(), clock, 2, logger.NewNopLogger())

	assert.Equal(t, 1, svc.Decrement(ctx, "client-a").Count)
	assert.Equal(t, 0, svc.Decrement(ctx, "client-a").Count)
	assert.True(t, svc.IsLimitReached(ctx, "client-a"))

	// Already exhausted: stays at zero, never negative.
	assert.Equal(t, 0, svc.Decrement(ctx, "client-a").Count)
}

func TestUsageDayRollover(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC)}
	svc := NewUsageService(memory.NewUsageRepository(), clock, 5, logger.NewNopLogger())

	svc.Decrement(ctx, "client-a")
	svc.Decrement(ctx, "client-a")
	require.Equal(t, 3, svc.GetUsage(ctx, "client-a").Count)

	// Crossing midnight resets the quota on the next read.
	clock.now = clock.now.Add(20 * time.Minute)
	usage := svc.GetUsage(ctx, "client-a")
	assert.Equal(t, 5, usage.Count)
	assert.Equal(t, "2026-03-15", usage.Date)
}

func TestUsageClientsAreIndependent(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := NewUsageService(memory.NewUsageRepository(), clock, 5, logger.NewNopLogger())

	svc.Decrement(ctx, "client-a")
	assert.Equal(t, 4, svc.GetUsage(ctx, "client-a").Count)
	assert.Equal(t, 5, svc.GetUsage(ctx, "client-b").Count)
}

func TestUsageDegradesToMemoryFallback(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := NewUsageService(brokenRepo{}, clock, 5, logger.NewNopLogger())

	// The tracker keeps working against the in-memory store.
	usage := svc.Decrement(ctx, "client-a")
	assert.Equal(t, 4, usage.Count)
	assert.Equal(t, 4, svc.GetUsage(ctx, "client-a").Count)
	assert.False(t, svc.IsLimitReached(ctx, "client-a"))
}

var _ contract.UsageRepository = brokenRepo{}
