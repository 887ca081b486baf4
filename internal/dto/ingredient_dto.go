package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateIngredientRequest struct {
	Name         string           `json:"name"          validate:"required,min=2,max=120"`
	Unit         string           `json:"unit"          validate:"required,oneof=kg g l ml un"`
	CostPerUnit  decimal.Decimal  `json:"cost_per_unit" validate:"min=0"`
	Supplier     *string          `json:"supplier"`
	MinStock     *decimal.Decimal `json:"min_stock"     validate:"omitempty,min=0"`
	CurrentStock *decimal.Decimal `json:"current_stock" validate:"omitempty,min=0"`
}

type UpdateIngredientRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=2,max=120"`
	Unit         *string          `json:"unit"          validate:"omitempty,oneof=kg g l ml un"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit"`
	Supplier     *string          `json:"supplier"`
	MinStock     *decimal.Decimal `json:"min_stock"     validate:"omitempty,min=0"`
	CurrentStock *decimal.Decimal `json:"current_stock" validate:"omitempty,min=0"`
}

type IngredientFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredientResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	CostPerUnit  decimal.Decimal  `json:"cost_per_unit"`
	Supplier     *string          `json:"supplier"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	CurrentStock *decimal.Decimal `json:"current_stock"`
}

type IngredientListResponse struct {
	Data  []IngredientResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
