package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"due-diligence-backend/internal/audit/adapter"
	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/audit/normalizer"
	"due-diligence-backend/internal/audit/repository"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"
	"due-diligence-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// ModeSync runs the profile category inline and returns its sub-record;
// ModeAsync returns right after dispatch.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// AuditService coordinates one audit: fan-out to the per-category adapters,
// normalization, commit, and run bookkeeping.
type AuditService interface {
	RunAudit(ctx context.Context, req *dto.CreateAuditRequest) (*dto.AuditResponse, error)
}

// NewAuditService creates the aggregation coordinator.
func NewAuditService(
	cfg *config.Config,
	log *logger.Logger,
	adapters []adapter.SourceAdapter,
	records repository.RecordRepository,
	runs repository.AuditRunRepository,
	locker repository.AuditLocker,
	publisher repository.EventPublisher,
) AuditService {
	byCategory := make(map[entity.Category]adapter.SourceAdapter, len(adapters))
	for _, a := range adapters {
		byCategory[a.Category()] = a
	}
	return &auditService{
		cfg:       cfg,
		log:       log,
		adapters:  byCategory,
		records:   records,
		runs:      runs,
		locker:    locker,
		publisher: publisher,
		validate:  validator.New(),
	}
}

type auditService struct {
	cfg       *config.Config
	log       *logger.Logger
	adapters  map[entity.Category]adapter.SourceAdapter
	records   repository.RecordRepository
	runs      repository.AuditRunRepository
	locker    repository.AuditLocker
	publisher repository.EventPublisher
	validate  *validator.Validate
}

// RunAudit validates the request, takes the per-company in-flight lock,
// marks every requested category pending and dispatches one worker per
// category. Workers are isolated: one category failing or timing out never
// touches its siblings.
func (s *auditService) RunAudit(ctx context.Context, req *dto.CreateAuditRequest) (*dto.AuditResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	categories, err := resolveCategories(req.Categories)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeSync
	}

	identity := entity.CompanyIdentity{
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		WebsiteURL:         req.WebsiteURL,
	}

	acquired, err := s.locker.Acquire(ctx, identity.CompanyName, s.cfg.Audit.LockTTLDuration())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrAuditInFlight, identity.CompanyName)
	}

	for _, category := range categories {
		if err := s.runs.MarkPending(ctx, identity.CompanyName, category); err != nil {
			s.releaseLock(identity.CompanyName)
			return nil, err
		}
	}

	response := &dto.AuditResponse{
		CompanyName: identity.CompanyName,
		Mode:        mode,
		Statuses:    make(map[string]dto.CategoryStatus, len(categories)),
	}
	for _, category := range categories {
		response.Statuses[string(category)] = dto.CategoryStatus{Status: entity.StatusPending}
	}

	// Workers outlive the HTTP request; detach from its cancellation but
	// keep values for logging.
	bgCtx := context.WithoutCancel(ctx)

	background := categories
	if mode == ModeSync && containsCategory(categories, entity.CategoryProfile) {
		record, err := s.runCategory(ctx, identity, entity.CategoryProfile)
		if err != nil {
			response.Statuses[string(entity.CategoryProfile)] = dto.CategoryStatus{
				Status: entity.StatusFailed,
				Error:  err.Error(),
			}
		} else {
			response.Statuses[string(entity.CategoryProfile)] = dto.CategoryStatus{Status: entity.StatusCommitted}
			if profile, ok := record.(*entity.AuditRecord); ok {
				response.Profile = profile
			}
		}
		background = withoutCategory(categories, entity.CategoryProfile)
	}

	var wg sync.WaitGroup
	for _, category := range background {
		category := category
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			if _, err := s.runCategory(bgCtx, identity, category); err != nil {
				s.log.ErrorContext(bgCtx, "Category failed",
					logger.StringField("company", identity.CompanyName),
					logger.StringField("category", string(category)),
					logger.ErrorField(err))
			}
		})
	}

	utils.GoSafe(func() {
		wg.Wait()
		s.settleAudit(bgCtx, identity.CompanyName)
	})

	return response, nil
}

// runCategory fetches, normalizes and commits one category under its own
// deadline. A result that arrives after the deadline is discarded, never
// committed.
func (s *auditService) runCategory(ctx context.Context, identity entity.CompanyIdentity, category entity.Category) (entity.SubRecord, error) {
	adp, ok := s.adapters[category]
	if !ok {
		reason := fmt.Sprintf("no adapter for category %s", category)
		s.markFailed(ctx, identity.CompanyName, category, reason)
		return nil, fmt.Errorf("%s", reason)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Audit.TimeoutFor(category))
	defer cancel()

	payload, err := adp.Fetch(fetchCtx, identity)
	if err != nil {
		s.markFailed(ctx, identity.CompanyName, category, err.Error())
		return nil, err
	}

	if !utils.ShouldContinue(fetchCtx) {
		err := fetchCtx.Err()
		s.markFailed(ctx, identity.CompanyName, category, err.Error())
		return nil, err
	}

	record, err := s.normalize(identity, category, payload)
	if err != nil {
		s.markFailed(ctx, identity.CompanyName, category, err.Error())
		return nil, err
	}

	if err := s.records.Upsert(ctx, record); err != nil {
		s.markFailed(ctx, identity.CompanyName, category, err.Error())
		return nil, err
	}

	if err := s.runs.MarkCommitted(ctx, identity.CompanyName, category); err != nil {
		return nil, err
	}
	return record, nil
}

// normalize routes the raw payload to its category's normalizer.
func (s *auditService) normalize(identity entity.CompanyIdentity, category entity.Category, payload interface{}) (entity.SubRecord, error) {
	switch category {
	case entity.CategoryProfile:
		p, ok := payload.(dto.ProfilePayload)
		if !ok {
			return nil, fmt.Errorf("unexpected profile payload %T", payload)
		}
		return normalizer.NormalizeProfile(identity, p), nil
	case entity.CategoryExecutives:
		p, ok := payload.(dto.ExecutivesPayload)
		if !ok {
			return nil, fmt.Errorf("unexpected executives payload %T", payload)
		}
		return normalizer.NormalizeExecutives(identity, p), nil
	case entity.CategoryFinancials:
		p, ok := payload.(dto.FinancialsPayload)
		if !ok {
			return nil, fmt.Errorf("unexpected financials payload %T", payload)
		}
		return normalizer.NormalizeFinancials(identity, p), nil
	case entity.CategoryLegalRisk:
		p, ok := payload.(dto.LegalRiskPayload)
		if !ok {
			return nil, fmt.Errorf("unexpected legal risk payload %T", payload)
		}
		return normalizer.NormalizeLegalRisk(identity, p), nil
	case entity.CategoryCompetitors:
		p, ok := payload.(dto.CompetitorsPayload)
		if !ok {
			return nil, fmt.Errorf("unexpected competitors payload %T", payload)
		}
		return normalizer.NormalizeCompetitors(identity, p), nil
	}
	return nil, fmt.Errorf("unknown category %s", category)
}

func (s *auditService) markFailed(ctx context.Context, companyName string, category entity.Category, reason string) {
	if err := s.runs.MarkFailed(ctx, companyName, category, reason); err != nil {
		s.log.ErrorContext(ctx, "Failed to settle run",
			logger.StringField("company", companyName),
			logger.StringField("category", string(category)),
			logger.ErrorField(err))
	}
}

// settleAudit runs once every category has settled: release the in-flight
// lock and publish the completion event with the per-category outcomes.
func (s *auditService) settleAudit(ctx context.Context, companyName string) {
	s.releaseLock(companyName)

	runs, err := s.runs.ListByCompany(ctx, companyName)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load runs for completion event",
			logger.StringField("company", companyName), logger.ErrorField(err))
		return
	}

	statuses := make(map[string]string, len(runs))
	for _, run := range runs {
		statuses[string(run.Category)] = string(run.Status)
	}
	if err := s.publisher.PublishCompleted(ctx, companyName, statuses); err != nil {
		s.log.ErrorContext(ctx, "Failed to publish completion event",
			logger.StringField("company", companyName), logger.ErrorField(err))
	}
}

func (s *auditService) releaseLock(companyName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.locker.Release(ctx, companyName); err != nil {
		s.log.Error("Failed to release audit lock",
			logger.StringField("company", companyName), logger.ErrorField(err))
	}
}

func resolveCategories(names []string) ([]entity.Category, error) {
	if len(names) == 0 {
		return entity.AllCategories(), nil
	}
	seen := make(map[entity.Category]bool, len(names))
	categories := make([]entity.Category, 0, len(names))
	for _, name := range names {
		category, err := entity.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	return categories, nil
}

func containsCategory(categories []entity.Category, target entity.Category) bool {
	for _, c := range categories {
		if c == target {
			return true
		}
	}
	return false
}

func withoutCategory(categories []entity.Category, target entity.Category) []entity.Category {
	out := make([]entity.Category, 0, len(categories))
	for _, c := range categories {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}
