package repository

import (
	"context"
	"time"

	"donmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClosureReportRepository interface {
	Create(ctx context.Context, c *model.ClosureReport) error
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.ClosureReport, error)
	Update(ctx context.Context, c *model.ClosureReport) error
	// ListPendingRetries returns pending reports whose next_retry_at has
	// passed, oldest first, limited to batchSize.
	ListPendingRetries(ctx context.Context, now time.Time, batchSize int) ([]model.ClosureReport, error)
}

type closureReportRepo struct{ db *gorm.DB }

func NewClosureReportRepository(db *gorm.DB) ClosureReportRepository {
	return &closureReportRepo{db: db}
}

func (r *closureReportRepo) Create(ctx context.Context, c *model.ClosureReport) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *closureReportRepo) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.ClosureReport, error) {
	var c model.ClosureReport
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&c).Error
	return &c, err
}

func (r *closureReportRepo) Update(ctx context.Context, c *model.ClosureReport) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *closureReportRepo) ListPendingRetries(ctx context.Context, now time.Time, batchSize int) ([]model.ClosureReport, error) {
	var list []model.ClosureReport
	err := r.db.WithContext(ctx).
		Where("status = 'pending' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", now).
		Order("next_retry_at ASC").Limit(batchSize).Find(&list).Error
	return list, err
}
