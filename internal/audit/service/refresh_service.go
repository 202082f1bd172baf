package service

import (
	"context"
	"errors"
	"time"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/audit/repository"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"
)

// RefreshService re-audits companies whose data has gone stale. Only the
// overwrite categories are refreshed; executive data is write-once and a
// re-fetch would be discarded anyway.
type RefreshService interface {
	RefreshStale(ctx context.Context) error
}

// NewRefreshService creates a new stale-data refresh sweep.
func NewRefreshService(cfg config.Refresh, log *logger.Logger, records repository.RecordRepository, audits AuditService) RefreshService {
	return &refreshService{cfg: cfg, log: log, records: records, audits: audits}
}

type refreshService struct {
	cfg     config.Refresh
	log     *logger.Logger
	records repository.RecordRepository
	audits  AuditService
}

// refreshCategories lists the categories worth re-fetching on a sweep.
var refreshCategories = []string{
	string(entity.CategoryProfile),
	string(entity.CategoryFinancials),
	string(entity.CategoryLegalRisk),
	string(entity.CategoryCompetitors),
}

// RefreshStale re-dispatches an async audit for every company whose profile
// is older than the configured cutoff. Companies with an audit already in
// flight are skipped.
func (s *refreshService) RefreshStale(ctx context.Context) error {
	cutoff := time.Now().Add(-s.cfg.MaxAgeDuration())
	stale, err := s.records.ListStale(ctx, cutoff)
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "Refreshing stale companies", logger.IntField("count", len(stale)))

	for _, record := range stale {
		req := &dto.CreateAuditRequest{
			CompanyName:        record.CompanyName,
			WebsiteURL:         record.WebsiteURL,
			RegistrationNumber: record.RegistrationNumber,
			Categories:         refreshCategories,
			Mode:               ModeAsync,
		}
		if _, err := s.audits.RunAudit(ctx, req); err != nil {
			if errors.Is(err, ErrAuditInFlight) {
				s.log.DebugContext(ctx, "Skipping company with audit in flight",
					logger.StringField("company", record.CompanyName))
				continue
			}
			s.log.ErrorContext(ctx, "Stale refresh dispatch failed",
				logger.StringField("company", record.CompanyName), logger.ErrorField(err))
		}
	}
	return nil
}
