package service

import (
	"context"
	"fmt"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/audit/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RecordService serves read access to committed audit data.
type RecordService interface {
	GetByCompanyName(ctx context.Context, companyName string) (*dto.RecordSetResponse, error)
	ListCompanies(ctx context.Context, search string, page, pageSize int) (*dto.ListCompaniesResponse, error)
}

// NewRecordService creates a new record query service.
func NewRecordService(records repository.RecordRepository, runs repository.AuditRunRepository) RecordService {
	return &recordService{records: records, runs: runs}
}

type recordService struct {
	records repository.RecordRepository
	runs    repository.AuditRunRepository
}

// GetByCompanyName returns the merged record set of a company plus the
// per-category run statuses. The name is matched exactly.
func (s *recordService) GetByCompanyName(ctx context.Context, companyName string) (*dto.RecordSetResponse, error) {
	set, err := s.records.GetRecordSet(ctx, companyName)
	if err != nil {
		return nil, err
	}

	runs, err := s.runs.ListByCompany(ctx, companyName)
	if err != nil {
		return nil, err
	}

	if set == nil && len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, companyName)
	}
	if set == nil {
		set = &repository.RecordSet{}
	}

	statuses := make(map[string]dto.CategoryStatus, len(runs))
	for _, run := range runs {
		status := dto.CategoryStatus{Status: run.Status}
		if run.ErrorMessage.Valid {
			status.Error = run.ErrorMessage.String
		}
		if run.CompletedAt.Valid {
			completedAt := run.CompletedAt.Time
			status.CompletedAt = &completedAt
		}
		statuses[string(run.Category)] = status
	}

	return &dto.RecordSetResponse{
		CompanyName: companyName,
		Profile:     set.Profile,
		Executives:  set.Executives,
		Financials:  set.Financials,
		LegalRisk:   set.LegalRisk,
		Competitors: set.Competitors,
		Statuses:    statuses,
	}, nil
}

// ListCompanies pages through audited companies filtered by a
// case-insensitive name substring.
func (s *recordService) ListCompanies(ctx context.Context, search string, page, pageSize int) (*dto.ListCompaniesResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	records, total, err := s.records.ListCompanies(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompanyListItem, 0, len(records))
	for _, record := range records {
		items = append(items, dto.CompanyListItem{
			CompanyName: record.CompanyName,
			WebsiteURL:  record.WebsiteURL,
			UpdatedAt:   record.UpdatedAt,
		})
	}

	return &dto.ListCompaniesResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
