package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecipeLineRequest is one ingredient line of a ficha técnica. The unit must
// match the ingredient's native unit exactly; there is no conversion.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required,gt=0"`
	Unit         string          `json:"unit"          validate:"required,oneof=kg g l ml un"`
}

type CreateRecipeRequest struct {
	Name          string              `json:"name"           validate:"required,min=2,max=120"`
	YieldQuantity decimal.Decimal     `json:"yield_quantity" validate:"required,gt=0"`
	YieldUnit     string              `json:"yield_unit"     validate:"required,oneof=kg g l ml un"`
	Ingredients   []RecipeLineRequest `json:"ingredients"    validate:"dive"`
}

// UpdateRecipeRequest replaces the header and, when Ingredients is non-nil,
// the whole line list (triggering an atomic recompute).
type UpdateRecipeRequest struct {
	Name          *string             `json:"name"           validate:"omitempty,min=2,max=120"`
	YieldQuantity *decimal.Decimal    `json:"yield_quantity" validate:"omitempty,gt=0"`
	YieldUnit     *string             `json:"yield_unit"     validate:"omitempty,oneof=kg g l ml un"`
	Ingredients   []RecipeLineRequest `json:"ingredients"    validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecipeLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Cost           decimal.Decimal `json:"cost"`
}

type RecipeResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	YieldQuantity decimal.Decimal      `json:"yield_quantity"`
	YieldUnit     string               `json:"yield_unit"`
	TotalCost     decimal.Decimal      `json:"total_cost"`
	CostPerYield  decimal.Decimal      `json:"cost_per_yield"`
	Ingredients   []RecipeLineResponse `json:"ingredients"`
}

type RecipeListResponse struct {
	Data  []RecipeResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
