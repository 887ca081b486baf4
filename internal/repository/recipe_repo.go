package repository

import (
	"context"

	"donmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	List(ctx context.Context, page, limit int) ([]model.Recipe, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SaveWithLines writes the recipe header and replaces its full line list
	// in ONE transaction. The derived fields must never be readable in a
	// state inconsistent with the current lines — fully old or fully new,
	// never partial.
	SaveWithLines(ctx context.Context, recipe *model.Recipe, lines []model.RecipeIngredient) error
	// CountMenuItemReferences reports how many menu items are bound to the
	// recipe — deletes must be refused while this is non-zero.
	CountMenuItemReferences(ctx context.Context, id uuid.UUID) (int64, error)
	// DB exposes the underlying *gorm.DB so services can compose wider
	// transactions when needed.
	DB() *gorm.DB
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func (r *recipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Ingredients.Ingredient").
		First(&rec, id).Error
	return &rec, err
}

func (r *recipeRepo) List(ctx context.Context, page, limit int) ([]model.Recipe, int64, error) {
	var list []model.Recipe
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Recipe{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Ingredients.Ingredient").
		Order("name ASC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *recipeRepo) SaveWithLines(ctx context.Context, recipe *model.Recipe, lines []model.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
}

func (r *recipeRepo) CountMenuItemReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("recipe_id = ?", id).Count(&n).Error
	return n, err
}

func (r *recipeRepo) DB() *gorm.DB { return r.db }
