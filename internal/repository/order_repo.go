package repository

import (
	"context"
	"time"

	"donmenu/internal/dto"
	"donmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create persists the order with its items inside the given transaction.
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	// ListItemsInWindow returns the sold lines of completed orders between
	// from and to — the CMV aggregator's sales feed.
	ListItemsInWindow(ctx context.Context, from, to time.Time) ([]model.OrderItem, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	NextOrderNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.MenuItem").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("created_at >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("created_at < ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Items.MenuItem").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListItemsInWindow(ctx context.Context, from, to time.Time) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = 'completed' AND orders.created_at >= ? AND orders.created_at < ?", from, to).
		Preload("MenuItem").
		Find(&items).Error
	return items, err
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

// NextOrderNumber allocates a monotonically increasing order number from a
// Postgres sequence, inside the caller's transaction.
func (r *orderRepo) NextOrderNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var n int64
	err := db.WithContext(ctx).Raw("SELECT nextval('order_number_seq')").Scan(&n).Error
	return n, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
