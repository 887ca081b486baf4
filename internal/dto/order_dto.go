package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	MenuItemID string          `json:"menu_item_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"     validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Note  *string            `json:"note"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type OrderFilter struct {
	From   string `form:"from"`   // RFC 3339 or YYYY-MM-DD
	To     string `form:"to"`
	Status string `form:"status"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Number         int64               `json:"number"`
	CaixaSessionID string              `json:"caixa_session_id"`
	Items          []OrderItemResponse `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	Status         string              `json:"status"`
	Note           *string             `json:"note"`
	CreatedAt      string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
