package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type TagSequenceRepository struct {
	client *redis.Client
}

func NewTagSequenceRepository(client *redis.Client) *TagSequenceRepository {
	return &TagSequenceRepository{
		client: client,
	}
}

// Next increments the per-day counter shared by every process, so tracking
// tags stay unique across replicas. The key expires two days out: once the
// day is over nobody reads it again.
func (r *TagSequenceRepository) Next(ctx context.Context, day string) (int64, error) {
	key := fmt.Sprintf("tracking:seq:%s", day)

	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment tag sequence: %w", err)
	}

	if n == 1 {
		if err := r.client.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			return 0, fmt.Errorf("failed to set tag sequence expiry: %w", err)
		}
	}

	return n, nil
}
