package contract

import (
	"context"
	"errors"

	"lexi-chat-be/internal/entity"
)

// ErrUsageNotFound signals that no usage record exists yet for the client.
var ErrUsageNotFound = errors.New("usage record not found")

// UsageRepository is the durable key-value store behind the think-longer
// quota tracker, keyed per client profile.
type UsageRepository interface {
	Get(ctx context.Context, clientId string) (*entity.Usage, error)
	Save(ctx context.Context, clientId string, usage *entity.Usage) error
}
