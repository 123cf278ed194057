package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	summaryKey        = "analytics:platform_summary"
	defaultSummaryTTL = time.Minute
)

// SummaryCache keeps the platform summary as a JSON blob.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SummaryCache = (*SummaryCache)(nil)

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

func (c *SummaryCache) Get(ctx context.Context) (*domain.PlatformSummary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("summary cache get: %w", err)
	}
	var s domain.PlatformSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("summary cache decode: %w", err)
	}
	return &s, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, s *domain.PlatformSummary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("summary cache set: %w", err)
	}
	return nil
}
