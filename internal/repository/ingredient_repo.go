package repository

import (
	"context"

	"donmenu/internal/dto"
	"donmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientRepository is the data access contract for the ingredient ledger.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling unit testing via in-memory fakes.
type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	FindByName(ctx context.Context, name string) (*model.Ingredient, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Ingredient, error)
	List(ctx context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error)
	Update(ctx context.Context, i *model.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountRecipeReferences reports how many recipe lines reference the
	// ingredient — deletes must be refused while this is non-zero.
	CountRecipeReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) FindByName(ctx context.Context, name string) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&i).Error
	return &i, err
}

func (r *ingredientRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Ingredient, error) {
	var list []model.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *ingredientRepo) List(ctx context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var list []model.Ingredient
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ingredient{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *ingredientRepo) Update(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ingredient{}, id).Error
}

func (r *ingredientRepo) CountRecipeReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RecipeIngredient{}).
		Where("ingredient_id = ?", id).Count(&n).Error
	return n, err
}
