package service

import (
	"context"
	"fmt"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/audit/repository"
)

// SummaryService produces the AI risk summary of an audited company.
type SummaryService interface {
	Summarize(ctx context.Context, companyName string) (*dto.SummaryResponse, error)
}

// NewSummaryService creates a new summary service. ai may be nil when no
// provider is configured; summaries are then reported unavailable.
func NewSummaryService(records repository.RecordRepository, ai repository.AIRepository) SummaryService {
	return &summaryService{records: records, ai: ai}
}

type summaryService struct {
	records repository.RecordRepository
	ai      repository.AIRepository
}

func (s *summaryService) Summarize(ctx context.Context, companyName string) (*dto.SummaryResponse, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("%w: no AI provider configured", ErrSummaryUnavailable)
	}

	set, err := s.records.GetRecordSet(ctx, companyName)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, companyName)
	}

	summary, err := s.ai.GenerateRiskSummary(ctx, companyName, set)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	return &dto.SummaryResponse{
		CompanyName: companyName,
		Summary:     summary,
	}, nil
}
