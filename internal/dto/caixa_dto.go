package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenCaixaRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

// CaixaEntryRequest records a manual revenue or expense inside the open
// session. The amount is always submitted positive; expenses are stored
// negated.
type CaixaEntryRequest struct {
	Kind        string          `json:"kind"        validate:"required,oneof=revenue expense"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
}

type CloseCaixaRequest struct {
	DeclaredAmount decimal.Decimal `json:"declared_amount" validate:"min=0"`
	Note           *string         `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaEntryResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}

type CaixaSessionResponse struct {
	ID             string               `json:"id"`
	Status         string               `json:"status"`
	OpeningAmount  decimal.Decimal      `json:"opening_amount"`
	ExpectedAmount *decimal.Decimal     `json:"expected_amount"`
	DeclaredAmount *decimal.Decimal     `json:"declared_amount"`
	Difference     *decimal.Decimal     `json:"difference"`
	Note           *string              `json:"note"`
	OpenedAt       string               `json:"opened_at"`
	ClosedAt       *string              `json:"closed_at"`
	Entries        []CaixaEntryResponse `json:"entries,omitempty"`
}

type CaixaHistoryResponse struct {
	Data  []CaixaSessionResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
