package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"due-diligence-backend/pkg/common"
	"due-diligence-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// EventPublisher announces settled audits to downstream consumers.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, companyName string, statuses map[string]string) error
}

// NewEventPublisher creates a Redis-stream-backed event publisher.
func NewEventPublisher(client *redis.Client) EventPublisher {
	return &eventPublisher{client: client}
}

type eventPublisher struct {
	client *redis.Client
}

func (p *eventPublisher) PublishCompleted(ctx context.Context, companyName string, statuses map[string]string) error {
	payload, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("marshal completion statuses: %w", err)
	}

	err = p.client.XAdd(ctx, &goredis.XAddArgs{
		Stream: common.RedisStreamAuditCompleted,
		Values: map[string]interface{}{
			"company_name": companyName,
			"statuses":     string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish completion for %q: %w", companyName, err)
	}
	return nil
}
