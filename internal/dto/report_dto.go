package dto

import "github.com/shopspring/decimal"

type ReportWindowFilter struct {
	From string `form:"from" validate:"required"` // RFC 3339 or YYYY-MM-DD
	To   string `form:"to"   validate:"required"`
}

// ─── CMV ─────────────────────────────────────────────────────────────────────

type ItemCMVResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	CMVPercent decimal.Decimal `json:"cmv_percent"`
}

// CMVWarning flags sold items with no bound recipe — they were costed at
// zero, which understates the overall CMV.
type CMVWarning struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
}

type CMVReportResponse struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Revenue    decimal.Decimal   `json:"revenue"`
	Cost       decimal.Decimal   `json:"cost"`
	CMVPercent decimal.Decimal   `json:"cmv_percent"`
	Items      []ItemCMVResponse `json:"items"`
	Warnings   []CMVWarning      `json:"warnings"`
}

// ─── Bookkeeping summary ─────────────────────────────────────────────────────

type SummaryReportResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Sales    decimal.Decimal `json:"sales"`
	Revenues decimal.Decimal `json:"revenues"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}
