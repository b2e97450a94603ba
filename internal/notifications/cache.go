package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadTTL = 24 * time.Hour

// UnreadCache keeps the per-company unread badge count in redis so read-state
// changes show up immediately, ahead of the store mirror.
type UnreadCache struct {
	client *redis.Client
}

// NewUnreadCache builds the cache around an existing client.
func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

func unreadKey(companyID string) string {
	return fmt.Sprintf("stockflow:notifications:unread:%s", companyID)
}

// Get returns the cached unread count. A missing key reports ok=false so the
// caller can rebuild from the store.
func (c *UnreadCache) Get(ctx context.Context, companyID string) (int, bool, error) {
	count, err := c.client.Get(ctx, unreadKey(companyID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if count < 0 {
		count = 0
	}
	return count, true, nil
}

// Set overwrites the unread count.
func (c *UnreadCache) Set(ctx context.Context, companyID string, count int) error {
	return c.client.Set(ctx, unreadKey(companyID), count, unreadTTL).Err()
}

// Increment bumps the count for a fresh notification.
func (c *UnreadCache) Increment(ctx context.Context, companyID string) error {
	return c.client.Incr(ctx, unreadKey(companyID)).Err()
}

// Decrement drops the count by one. Concurrent reads clamp at zero.
func (c *UnreadCache) Decrement(ctx context.Context, companyID string) error {
	return c.client.Decr(ctx, unreadKey(companyID)).Err()
}

// Clear zeroes the count.
func (c *UnreadCache) Clear(ctx context.Context, companyID string) error {
	return c.client.Set(ctx, unreadKey(companyID), 0, unreadTTL).Err()
}
