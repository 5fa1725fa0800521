package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const usageKeyPrefix = "usage:think_longer:"

// UsageRepositoryRedis persists usage records as JSON values in Redis, the
// server-side analog of the browser's localStorage quota key.
type UsageRepositoryRedis struct {
	rdb *redis.Client
}

func NewUsageRepositoryRedis(rdb *redis.Client) *UsageRepositoryRedis {
	return &UsageRepositoryRedis{rdb: rdb}
}

var _ contract.UsageRepository = &UsageRepositoryRedis{}

func (r *UsageRepositoryRedis) Get(ctx context.Context, clientId string) (*entity.Usage, error) {
	raw, err := r.rdb.Get(ctx, usageKeyPrefix+clientId).Result()
	if err == redis.Nil {
		return nil, contract.ErrUsageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get usage: %w", err)
	}

	var usage entity.Usage
	if err := json.Unmarshal([]byte(raw), &usage); err != nil {
		// A corrupt record is treated as absent so the tracker can reset it.
		return nil, contract.ErrUsageNotFound
	}
	return &usage, nil
}

func (r *UsageRepositoryRedis) Save(ctx context.Context, clientId string, usage *entity.Usage) error {
	data, err := json.Marshal(usage)
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}
	if err := r.rdb.Set(ctx, usageKeyPrefix+clientId, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set usage: %w", err)
	}
	return nil
}
