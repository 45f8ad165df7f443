package consumer

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/config"
	"github.com/tnglf1337/studyhuppy/internal/service"
	"github.com/tnglf1337/studyhuppy/pkg/redis"
)

// UserDeletionConsumer consumes the account-deletion events that the
// authentication service publishes on the user-deletion stream and runs
// the full data cascade for the named user.
//
// Delivery is at-least-once: a message is acked only after the cascade
// succeeded, so a failed run is redelivered and re-executed. There is no
// de-duplication; re-running is safe because every deletion step treats
// an already-absent target as a non-error.
type UserDeletionConsumer struct {
	client *redis.Client
	cfg    *config.RedisConfig
	svc    service.UserDeletionService
	logger *zap.Logger
}

// NewUserDeletionConsumer creates the consumer.
func NewUserDeletionConsumer(client *redis.Client, cfg *config.RedisConfig, svc service.UserDeletionService, logger *zap.Logger) *UserDeletionConsumer {
	return &UserDeletionConsumer{client: client, cfg: cfg, svc: svc, logger: logger}
}

// Run blocks and processes events until the context is canceled.
func (c *UserDeletionConsumer) Run(ctx context.Context) error {
	if err := c.client.EnsureGroup(ctx, c.cfg.Stream, c.cfg.Group); err != nil {
		return err
	}

	c.logger.Info("user deletion consumer started",
		zap.String("stream", c.cfg.Stream),
		zap.String("group", c.cfg.Group),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msgs, err := c.client.ReadGroup(ctx, c.cfg.Stream, c.cfg.Group, c.cfg.Consumer, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("reading user deletion stream failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			c.handle(ctx, msg)
		}
	}
}

func (c *UserDeletionConsumer) handle(ctx context.Context, msg goredis.XMessage) {
	username := UsernameFromMessage(msg.Values)
	if username == "" {
		// Malformed event: ack it away instead of redelivering forever.
		c.logger.Warn("dropping user deletion event without username",
			zap.String("message_id", msg.ID),
		)
		c.ack(ctx, msg.ID)
		return
	}

	if err := c.svc.DeleteAllUserData(ctx, username); err != nil {
		// Not acked: the entry stays pending and is redelivered.
		c.logger.Error("user deletion event failed, will be redelivered",
			zap.String("message_id", msg.ID),
			zap.String("username", username),
			zap.Error(err),
		)
		return
	}

	c.logger.Info("processed user deletion event",
		zap.String("message_id", msg.ID),
		zap.String("username", username),
	)
	c.ack(ctx, msg.ID)
}

func (c *UserDeletionConsumer) ack(ctx context.Context, id string) {
	if err := c.client.Ack(ctx, c.cfg.Stream, c.cfg.Group, id); err != nil {
		c.logger.Error("acking message failed",
			zap.String("message_id", id),
			zap.Error(err),
		)
	}
}

// UsernameFromMessage extracts the username from a stream entry. The
// producer either sets a plain "username" field or a "payload" field
// holding the JSON user dto.
func UsernameFromMessage(values map[string]interface{}) string {
	if v, ok := values["username"].(string); ok && v != "" {
		return v
	}
	if raw, ok := values["payload"].(string); ok && raw != "" {
		var payload struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			return payload.Username
		}
	}
	return ""
}
