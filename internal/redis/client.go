package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const orderSequenceKey = "orders:sequence"

// Client wraps the parts of Redis the order desk uses: a strictly
// increasing id sequence that survives restarts and never depends on
// scanning the ledger table.
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NextOrderID atomically increments and returns the order sequence.
func (c *Client) NextOrderID(ctx context.Context) (uint, error) {
	val, err := c.rdb.Incr(ctx, orderSequenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance order sequence: %w", err)
	}
	return uint(val), nil
}

// SeedOrderSequence raises the sequence to at least floor. Called at
// startup with the current max ledger id so a fresh Redis never hands
// out ids the table already contains.
func (c *Client) SeedOrderSequence(ctx context.Context, floor uint) error {
	current, err := c.rdb.Get(ctx, orderSequenceKey).Uint64()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read order sequence: %w", err)
	}
	if uint(current) >= floor {
		return nil
	}
	if err := c.rdb.Set(ctx, orderSequenceKey, uint64(floor), 0).Err(); err != nil {
		return fmt.Errorf("failed to seed order sequence: %w", err)
	}
	return nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
