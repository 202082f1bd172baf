package service

import "errors"

var (
	// ErrValidation marks a request rejected before any task was dispatched.
	ErrValidation = errors.New("invalid audit request")
	// ErrAuditInFlight marks a duplicate audit for a company that is still
	// being processed.
	ErrAuditInFlight = errors.New("audit already in flight")
	// ErrNotFound marks a lookup for a company no category was ever
	// committed for.
	ErrNotFound = errors.New("company not found")
	// ErrSummaryUnavailable marks an AI summary request that could not be
	// served.
	ErrSummaryUnavailable = errors.New("summary unavailable")
)
