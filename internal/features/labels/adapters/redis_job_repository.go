package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"label-printer/internal/core/cache"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/ports"
)

const jobKeyPrefix = "label_job:"

// RedisJobRepository implements ports.JobRepository using the cache adaptation.
type RedisJobRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisJobRepository creates a new RedisJobRepository. Summaries expire after ttl; 0 keeps them.
func NewRedisJobRepository(c cache.Cache, ttl time.Duration) *RedisJobRepository {
	return &RedisJobRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Save stores the job summary in the cache.
func (r *RedisJobRepository) Save(ctx context.Context, summary domain.JobSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal job summary: %w", err)
	}

	if err := r.cache.Set(ctx, jobKeyPrefix+summary.ID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save job summary to cache: %w", err)
	}

	return nil
}

// Get retrieves a job summary from the cache. Unknown or expired ids return ports.ErrJobNotFound.
func (r *RedisJobRepository) Get(ctx context.Context, id string) (*domain.JobSummary, error) {
	data, err := r.cache.Get(ctx, jobKeyPrefix+id)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", ports.ErrJobNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job summary from cache: %w", err)
	}

	var summary domain.JobSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job summary: %w", err)
	}

	return &summary, nil
}
