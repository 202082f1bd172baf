package repository

import (
	"context"
	"fmt"
	"time"

	"due-diligence-backend/pkg/common"
	"due-diligence-backend/pkg/redis"
)

// AuditLocker guards against concurrent audits of the same company. The lock
// is best-effort: it expires on its own so a crashed run never wedges the
// company.
type AuditLocker interface {
	// Acquire returns true when the caller now holds the lock, false when
	// another audit is already in flight.
	Acquire(ctx context.Context, companyName string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, companyName string) error
}

// NewAuditLocker creates a Redis-backed audit locker.
func NewAuditLocker(client *redis.Client) AuditLocker {
	return &auditLocker{client: client}
}

type auditLocker struct {
	client *redis.Client
}

func lockKey(companyName string) string {
	return common.RedisAuditLockPrefix + companyName
}

func (l *auditLocker) Acquire(ctx context.Context, companyName string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(companyName), time.Now().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire audit lock for %q: %w", companyName, err)
	}
	return ok, nil
}

func (l *auditLocker) Release(ctx context.Context, companyName string) error {
	if err := l.client.Del(ctx, lockKey(companyName)).Err(); err != nil {
		return fmt.Errorf("release audit lock for %q: %w", companyName, err)
	}
	return nil
}
