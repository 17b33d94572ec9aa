package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"label-printer/internal/core/cache"
	"label-printer/internal/core/logger"
	"label-printer/internal/features/orders/domain"
	"label-printer/internal/features/orders/ports"

	"go.uber.org/zap"
)

// CachedSource is a read-through cache in front of another OrderSource.
// A preview followed by a print of the same batch hits the backend once.
// Cache failures never fail a fetch; they only cost a backend round-trip.
type CachedSource struct {
	next  ports.OrderSource
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSource wraps next. A zero ttl returns next unchanged.
func NewCachedSource(next ports.OrderSource, c cache.Cache, ttl time.Duration) ports.OrderSource {
	if ttl <= 0 || c == nil {
		return next
	}
	return &CachedSource{next: next, cache: c, ttl: ttl}
}

// GetOrder implements ports.OrderSource.
func (s *CachedSource) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return readThrough(ctx, s, "order:"+orderID, func() (*domain.Order, error) {
		return s.next.GetOrder(ctx, orderID)
	})
}

// GetCustomer implements ports.OrderSource.
func (s *CachedSource) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return readThrough(ctx, s, "customer:"+customerID, func() (*domain.Customer, error) {
		return s.next.GetCustomer(ctx, customerID)
	})
}

func readThrough[T any](ctx context.Context, s *CachedSource, key string, load func() (*T, error)) (*T, error) {
	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(data, &v); jsonErr == nil {
			return &v, nil
		}
		logger.Get().Warn("Discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, cache.ErrCacheMiss):
		logger.Get().Warn("Order cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			logger.Get().Warn("Order cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}
