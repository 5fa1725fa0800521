package memory

import (
	"context"
	"time"

	"lexi-chat-be/internal/entity"
	"lexi-chat-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// UsageRepository is the in-memory fallback used when durable storage is
// unavailable. Records live for the process lifetime only.
type UsageRepository struct {
	cache *cache.Cache
}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

var _ contract.UsageRepository = &UsageRepository{}

func (r *UsageRepository) Get(ctx context.Context, clientId string) (*entity.Usage, error) {
	if x, found := r.cache.Get(clientId); found {
		return x.(*entity.Usage), nil
	}
	return nil, contract.ErrUsageNotFound
}

func (r *UsageRepository) Save(ctx context.Context, clientId string, usage *entity.Usage) error {
	r.cache.Set(clientId, usage, cache.NoExpiration)
	return nil
}
