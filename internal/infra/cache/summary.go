package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "item_booking_summary:"

// RedisSummaryCache holds item booking summaries with a TTL so a missed
// invalidation heals itself.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

func summaryKey(itemID int64) string {
	return fmt.Sprintf("%s%d", summaryKeyPrefix, itemID)
}

func (c *RedisSummaryCache) Get(ctx context.Context, itemID int64) (*queries.ItemBookingSummary, error) {
	data, err := c.client.Get(ctx, summaryKey(itemID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to read summary from cache")
	}

	var summary queries.ItemBookingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, errs.Wrap(err, "failed to decode cached summary")
	}
	return &summary, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, summary *queries.ItemBookingSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return errs.Wrap(err, "failed to encode summary")
	}
	if err := c.client.Set(ctx, summaryKey(summary.ItemID), data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write summary to cache")
	}
	return nil
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, itemID int64) error {
	if err := c.client.Del(ctx, summaryKey(itemID)).Err(); err != nil {
		return errs.Wrap(err, "failed to invalidate cached summary")
	}
	return nil
}
