package repository

import (
	"context"
	"time"

	"donmenu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	CreateSession(ctx context.Context, s *model.CaixaSession) error
	FindOpenSession(ctx context.Context) (*model.CaixaSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CaixaSession, error)
	// CloseSession persists the closing fields with a guard on status, so a
	// concurrent close loses instead of silently overwriting.
	CloseSession(ctx context.Context, s *model.CaixaSession) error
	CreateEntry(ctx context.Context, e *model.CaixaEntry) error
	// CreateEntryTx writes an entry inside a caller-owned transaction
	// (order placement joins entry + order in one commit).
	CreateEntryTx(tx *gorm.DB, e *model.CaixaEntry) error
	ListEntries(ctx context.Context, sessionID uuid.UUID) ([]model.CaixaEntry, error)
	// ListEntriesInWindow returns entries of every session created in
	// [from, to), oldest first — the bookkeeping summary's feed.
	ListEntriesInWindow(ctx context.Context, from, to time.Time) ([]model.CaixaEntry, error)
	SumEntries(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error)
	ListSessions(ctx context.Context, page, limit int) ([]model.CaixaSession, int64, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) CreateSession(ctx context.Context, s *model.CaixaSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindOpenSession(ctx context.Context) (*model.CaixaSession, error) {
	var s model.CaixaSession
	err := r.db.WithContext(ctx).Where("status = 'open'").First(&s).Error
	return &s, err
}

func (r *caixaRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CaixaSession, error) {
	var s model.CaixaSession
	err := r.db.WithContext(ctx).Preload("Entries").First(&s, id).Error
	return &s, err
}

func (r *caixaRepo) CloseSession(ctx context.Context, s *model.CaixaSession) error {
	res := r.db.WithContext(ctx).Model(&model.CaixaSession{}).
		Where("id = ? AND status = 'open'", s.ID).
		Updates(map[string]interface{}{
			"status":          s.Status,
			"expected_amount": s.ExpectedAmount,
			"declared_amount": s.DeclaredAmount,
			"difference":      s.Difference,
			"note":            s.Note,
			"closed_at":       s.ClosedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *caixaRepo) CreateEntry(ctx context.Context, e *model.CaixaEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *caixaRepo) CreateEntryTx(tx *gorm.DB, e *model.CaixaEntry) error {
	return tx.Create(e).Error
}

func (r *caixaRepo) ListEntries(ctx context.Context, sessionID uuid.UUID) ([]model.CaixaEntry, error) {
	var entries []model.CaixaEntry
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *caixaRepo) ListEntriesInWindow(ctx context.Context, from, to time.Time) ([]model.CaixaEntry, error) {
	var entries []model.CaixaEntry
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *caixaRepo) SumEntries(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.CaixaEntry{}).
		Select("SUM(amount)").Where("session_id = ?", sessionID).Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *caixaRepo) ListSessions(ctx context.Context, page, limit int) ([]model.CaixaSession, int64, error) {
	var list []model.CaixaSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CaixaSession{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("opened_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
