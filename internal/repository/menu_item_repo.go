package repository

import (
	"context"

	"donmenu/internal/dto"
	"donmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuItemRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, int64, error)
	// ListVisible returns active+visible items for the public cardápio.
	ListVisible(ctx context.Context) ([]model.MenuItem, error)
	// ListWithRecipes returns all items that have a recipe bound, with the
	// recipe preloaded — the CMV aggregator builds its cost map from this.
	ListWithRecipes(ctx context.Context) ([]model.MenuItem, error)
	Update(ctx context.Context, m *model.MenuItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type menuItemRepo struct{ db *gorm.DB }

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository { return &menuItemRepo{db: db} }

func (r *menuItemRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Preload("Recipe").First(&m, id).Error
	return &m, err
}

func (r *menuItemRepo) List(ctx context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, int64, error) {
	var list []model.MenuItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MenuItem{})

	// Active filter: "false" = inactive only, "all" = everything, default = active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *menuItemRepo) ListVisible(ctx context.Context) ([]model.MenuItem, error) {
	var list []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("active = true AND visible = true").
		Order("category ASC, name ASC").Find(&list).Error
	return list, err
}

func (r *menuItemRepo) ListWithRecipes(ctx context.Context) ([]model.MenuItem, error) {
	var list []model.MenuItem
	err := r.db.WithContext(ctx).Preload("Recipe").
		Where("recipe_id IS NOT NULL").Find(&list).Error
	return list, err
}

func (r *menuItemRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuItemRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", id).Update("active", false).Error
}
