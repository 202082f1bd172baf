package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"due-diligence-backend/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStore marks persistence failures. Callers report the category as failed
// and do not retry.
var ErrStore = errors.New("store failure")

// WritePolicy decides what an upsert does when a row for the company already
// exists.
type WritePolicy int

const (
	// PolicyOverwrite replaces the existing row with the new record.
	PolicyOverwrite WritePolicy = iota
	// PolicyInsertIfAbsent keeps the existing row and discards the new record.
	PolicyInsertIfAbsent
)

// writePolicies is the explicit per-category policy table. Executive data is
// treated as immutable once captured; everything else follows
// last-successful-fetch-wins.
var writePolicies = map[entity.Category]WritePolicy{
	entity.CategoryProfile:     PolicyOverwrite,
	entity.CategoryExecutives:  PolicyInsertIfAbsent,
	entity.CategoryFinancials:  PolicyOverwrite,
	entity.CategoryLegalRisk:   PolicyOverwrite,
	entity.CategoryCompetitors: PolicyOverwrite,
}

// PolicyFor returns the write policy of a category.
func PolicyFor(category entity.Category) WritePolicy {
	return writePolicies[category]
}

// RecordSet groups every committed sub-record of one company. A nil field
// means that category has never been committed.
type RecordSet struct {
	Profile     *entity.AuditRecord
	Executives  *entity.ExecutivesRecord
	Financials  *entity.FinancialRecord
	LegalRisk   *entity.LegalRiskRecord
	Competitors *entity.CompetitorsRecord
}

// RecordRepository persists and reads the per-category sub-records.
type RecordRepository interface {
	Upsert(ctx context.Context, record entity.SubRecord) error
	GetRecordSet(ctx context.Context, companyName string) (*RecordSet, error)
	ListCompanies(ctx context.Context, search string, page, pageSize int) ([]entity.AuditRecord, int64, error)
	ListStale(ctx context.Context, before time.Time) ([]entity.AuditRecord, error)
}

// NewRecordRepository creates a new GORM-based record repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

type recordRepository struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// keyLock serializes writes for one (company, category) pair. Writes for
// different pairs proceed independently.
func (r *recordRepository) keyLock(key string, category entity.Category) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locks == nil {
		r.locks = make(map[string]*sync.Mutex)
	}
	id := key + "|" + string(category)
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

// Upsert commits one normalized sub-record under its category's write policy.
// The operation is idempotent: re-committing the same record leaves exactly
// one row for the company.
func (r *recordRepository) Upsert(ctx context.Context, record entity.SubRecord) error {
	lock := r.keyLock(record.Key(), record.Category())
	lock.Lock()
	defer lock.Unlock()

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_name"}},
		UpdateAll: true,
	}
	if PolicyFor(record.Category()) == PolicyInsertIfAbsent {
		conflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_name"}},
			DoNothing: true,
		}
	}

	if err := r.db.WithContext(ctx).Clauses(conflict).Create(record).Error; err != nil {
		return fmt.Errorf("%w: upsert %s for %q: %v", ErrStore, record.Category(), record.Key(), err)
	}
	return nil
}

// GetRecordSet loads every sub-record of a company. A missing category yields
// a nil field, never an error; (nil, nil) means no category was ever
// committed for the name.
func (r *recordRepository) GetRecordSet(ctx context.Context, companyName string) (*RecordSet, error) {
	set := &RecordSet{}
	found := false

	var profile entity.AuditRecord
	if err := r.first(ctx, &profile, companyName); err == nil {
		set.Profile = &profile
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: load profile for %q: %v", ErrStore, companyName, err)
	}

	var executives entity.ExecutivesRecord
	if err := r.first(ctx, &executives, companyName); err == nil {
		set.Executives = &executives
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: load executives for %q: %v", ErrStore, companyName, err)
	}

	var financials entity.FinancialRecord
	if err := r.first(ctx, &financials, companyName); err == nil {
		set.Financials = &financials
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: load financials for %q: %v", ErrStore, companyName, err)
	}

	var legalRisk entity.LegalRiskRecord
	if err := r.first(ctx, &legalRisk, companyName); err == nil {
		set.LegalRisk = &legalRisk
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: load legal risk for %q: %v", ErrStore, companyName, err)
	}

	var competitors entity.CompetitorsRecord
	if err := r.first(ctx, &competitors, companyName); err == nil {
		set.Competitors = &competitors
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: load competitors for %q: %v", ErrStore, companyName, err)
	}

	if !found {
		return nil, nil
	}
	return set, nil
}

func (r *recordRepository) first(ctx context.Context, dest interface{}, companyName string) error {
	return r.db.WithContext(ctx).Where("company_name = ?", companyName).First(dest).Error
}

// ListCompanies pages through audited companies, optionally filtered by a
// case-insensitive substring of the company name.
func (r *recordRepository) ListCompanies(ctx context.Context, search string, page, pageSize int) ([]entity.AuditRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.AuditRecord{})
	if search != "" {
		query = query.Where("LOWER(company_name) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count companies: %v", ErrStore, err)
	}

	var records []entity.AuditRecord
	err := query.
		Order("company_name ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list companies: %v", ErrStore, err)
	}
	return records, total, nil
}

// ListStale returns companies whose profile has not been refreshed since the
// given time.
func (r *recordRepository) ListStale(ctx context.Context, before time.Time) ([]entity.AuditRecord, error) {
	var records []entity.AuditRecord
	err := r.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list stale companies: %v", ErrStore, err)
	}
	return records, nil
}
