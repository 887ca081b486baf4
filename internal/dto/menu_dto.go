package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string          `json:"name"     validate:"required,min=2,max=120"`
	Description *string         `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"    validate:"min=0"`
	Visible     *bool           `json:"visible"`
}

type UpdateMenuItemRequest struct {
	Name        *string `json:"name"     validate:"omitempty,min=2,max=120"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Visible     *bool   `json:"visible"`
	Active      *bool   `json:"active"`
}

// BindPricingRequest switches a menu item between the two pricing modes.
//
//   - manual_pricing=true: manual_price is required; recipe binding and the
//     informational snapshot fields are left as they were.
//   - manual_pricing=false: recipe_id and desired_margin are required; the
//     price and every snapshot field are recomputed from the recipe cost.
type BindPricingRequest struct {
	ManualPricing bool             `json:"manual_pricing"`
	ManualPrice   *decimal.Decimal `json:"manual_price"   validate:"omitempty,min=0"`
	RecipeID      *string          `json:"recipe_id"      validate:"omitempty,uuid"`
	DesiredMargin *decimal.Decimal `json:"desired_margin" validate:"omitempty,min=0,lt=100"`
}

type MenuItemFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Active   string `form:"active"` // "false" | "all" | default active-only
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MenuItemResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	Category       string           `json:"category"`
	Price          decimal.Decimal  `json:"price"`
	RecipeID       *string          `json:"recipe_id"`
	DesiredMargin  *decimal.Decimal `json:"desired_margin"`
	ManualPricing  bool             `json:"manual_pricing"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	GrossProfit    *decimal.Decimal `json:"gross_profit"`
	ActualMargin   *decimal.Decimal `json:"actual_margin"`
	Active         bool             `json:"active"`
	Visible        bool             `json:"visible"`
}

type MenuItemListResponse struct {
	Data  []MenuItemResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PublicMenuItem is the unauthenticated cardápio view — prices only, no cost
// or margin data.
type PublicMenuItem struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
}

type PublicMenuResponse struct {
	Restaurant string           `json:"restaurant"`
	Items      []PublicMenuItem `json:"items"`
}
