package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"due-diligence-backend/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditRunRepository tracks the lifecycle of per-category fetches. Exactly
// one row exists per (company, category); a new audit for an already tracked
// pair resets the row to pending.
type AuditRunRepository interface {
	MarkPending(ctx context.Context, companyName string, category entity.Category) error
	MarkCommitted(ctx context.Context, companyName string, category entity.Category) error
	MarkFailed(ctx context.Context, companyName string, category entity.Category, reason string) error
	ListByCompany(ctx context.Context, companyName string) ([]entity.AuditRun, error)
}

// NewAuditRunRepository creates a new GORM-based audit run repository.
func NewAuditRunRepository(db *gorm.DB) AuditRunRepository {
	return &auditRunRepository{db: db}
}

type auditRunRepository struct {
	db *gorm.DB
}

// MarkPending upserts the run row to pending and stamps a fresh start time.
// Any previous outcome (status, error, completion time) is cleared.
func (r *auditRunRepository) MarkPending(ctx context.Context, companyName string, category entity.Category) error {
	run := entity.AuditRun{
		CompanyName: companyName,
		Category:    category,
		Status:      entity.StatusPending,
		StartedAt:   time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_name"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "error_message", "started_at", "completed_at",
		}),
	}).Create(&run).Error
	if err != nil {
		return fmt.Errorf("%w: mark %s pending for %q: %v", ErrStore, category, companyName, err)
	}
	return nil
}

// MarkCommitted settles a pending run as committed.
func (r *auditRunRepository) MarkCommitted(ctx context.Context, companyName string, category entity.Category) error {
	return r.settle(ctx, companyName, category, entity.StatusCommitted, "")
}

// MarkFailed settles a pending run as failed with the failure reason.
func (r *auditRunRepository) MarkFailed(ctx context.Context, companyName string, category entity.Category, reason string) error {
	return r.settle(ctx, companyName, category, entity.StatusFailed, reason)
}

func (r *auditRunRepository) settle(ctx context.Context, companyName string, category entity.Category, status entity.RunStatus, reason string) error {
	updates := map[string]interface{}{
		"status":        status,
		"error_message": sql.NullString{String: reason, Valid: reason != ""},
		"completed_at":  sql.NullTime{Time: time.Now(), Valid: true},
	}
	err := r.db.WithContext(ctx).
		Model(&entity.AuditRun{}).
		Where("company_name = ? AND category = ?", companyName, category).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("%w: mark %s %s for %q: %v", ErrStore, category, status, companyName, err)
	}
	return nil
}

// ListByCompany returns the run rows of a company in category order.
func (r *auditRunRepository) ListByCompany(ctx context.Context, companyName string) ([]entity.AuditRun, error) {
	var runs []entity.AuditRun
	err := r.db.WithContext(ctx).
		Where("company_name = ?", companyName).
		Order("category ASC").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list runs for %q: %v", ErrStore, companyName, err)
	}
	return runs, nil
}
