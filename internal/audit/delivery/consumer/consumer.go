package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/common"
	"due-diligence-backend/pkg/logger"
	"due-diligence-backend/pkg/redis"
	"due-diligence-backend/pkg/telegram"

	goredis "github.com/redis/go-redis/v9"
)

// CompletionConsumer reads audit.completed events off the Redis stream and
// forwards a per-category digest to Telegram.
type CompletionConsumer struct {
	redisClient *redis.Client
	notifier    telegram.Notifier
	logger      *logger.Logger
}

// NewCompletionConsumer creates a new completion event consumer.
func NewCompletionConsumer(redisClient *redis.Client, notifier telegram.Notifier, log *logger.Logger) *CompletionConsumer {
	return &CompletionConsumer{
		redisClient: redisClient,
		notifier:    notifier,
		logger:      log,
	}
}

// Start creates the consumer group and processes events until the context is
// canceled.
func (c *CompletionConsumer) Start(ctx context.Context) error {
	err := c.redisClient.XGroupCreateMkStream(ctx, common.RedisStreamAuditCompleted, common.RedisStreamGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		c.processNext(ctx)
	}
}

// processNext reads and handles at most one event.
func (c *CompletionConsumer) processNext(ctx context.Context) {
	streams, err := c.redisClient.XReadGroup(ctx, &goredis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamAuditCompleted, ">"},
		Count:    1,
		Block:    2 * time.Second,
		NoAck:    true,
	}).Result()
	if err != nil {
		// Canceled and redis.Nil are expected during shutdown and idle
		// periods.
		if err == context.Canceled || err == goredis.Nil {
			return
		}
		c.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}
	message := streams[0].Messages[0]

	companyName, _ := message.Values["company_name"].(string)
	rawStatuses, _ := message.Values["statuses"].(string)
	if companyName == "" {
		c.logger.Error("Malformed completion event", logger.StringField("message_id", message.ID))
		return
	}

	statuses := map[string]string{}
	if err := json.Unmarshal([]byte(rawStatuses), &statuses); err != nil {
		c.logger.Error("Failed to unmarshal statuses",
			logger.StringField("message_id", message.ID), logger.ErrorField(err))
		return
	}

	if err := c.notifier.SendMessage(FormatDigest(companyName, statuses)); err != nil {
		c.logger.Error("Failed to send audit digest",
			logger.StringField("company", companyName), logger.ErrorField(err))
	}
}

// FormatDigest renders the completion digest sent to Telegram.
func FormatDigest(companyName string, statuses map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Audit completed: %s*\n", companyName)

	categories := make([]string, 0, len(statuses))
	for category := range statuses {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		marker := "✅"
		if statuses[category] != string(entity.StatusCommitted) {
			marker = "❌"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", marker, category, statuses[category])
	}
	return b.String()
}
