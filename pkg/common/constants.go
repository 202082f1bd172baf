package common

const (
	RedisStreamAuditCompleted = "audit.completed"

	RedisStreamGroup    = "audit-group"
	RedisStreamConsumer = "audit-consumer"

	// RedisAuditLockPrefix prefixes the per-company in-flight audit lock keys.
	RedisAuditLockPrefix = "audit.inflight:"
)
