package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/config"
)

// Client wraps the redis connection. It carries the user-deletion event
// stream that the authentication service publishes to.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to redis and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Stream consumption ──

// EnsureGroup creates the consumer group on the stream if it does not
// exist yet. The stream itself is created empty when missing.
func (c *Client) EnsureGroup(ctx context.Context, stream, group string) error {
	err := c.rdb.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group %q on %q: %w", group, stream, err)
	}
	return nil
}

// ReadGroup blocks for up to block and returns the next batch of pending
// messages for the consumer. An empty batch is returned on timeout.
func (c *Client) ReadGroup(ctx context.Context, stream, group, consumer string, block time.Duration) ([]goredis.XMessage, error) {
	res, err := c.rdb.XReadGroup(ctx, &goredis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    16,
		Block:    block,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var msgs []goredis.XMessage
	for _, s := range res {
		msgs = append(msgs, s.Messages...)
	}
	return msgs, nil
}

// Ack confirms the processing of a message. Unacked messages stay in the
// pending list and are redelivered, which gives at-least-once semantics.
func (c *Client) Ack(ctx context.Context, stream, group, id string) error {
	return c.rdb.XAck(ctx, stream, group, id).Err()
}

// Close closes the redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
