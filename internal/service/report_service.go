package service

import (
	"context"
	"fmt"
	"time"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	// CMV aggregates completed sales in [from, to) against the current
	// recipe cost of each sold item.
	CMV(ctx context.Context, filter dto.ReportWindowFilter) (*dto.CMVReportResponse, error)
	// Summary totals the caixa movement in [from, to) by entry kind.
	Summary(ctx context.Context, filter dto.ReportWindowFilter) (*dto.SummaryReportResponse, error)
}

type reportService struct {
	orders repository.OrderRepository
	items  repository.MenuItemRepository
	caixa  repository.CaixaRepository
}

func NewReportService(orders repository.OrderRepository, items repository.MenuItemRepository, caixa repository.CaixaRepository) ReportService {
	return &reportService{orders: orders, items: items, caixa: caixa}
}

func (s *reportService) CMV(ctx context.Context, filter dto.ReportWindowFilter) (*dto.CMVReportResponse, error) {
	from, to, err := parseWindow(filter)
	if err != nil {
		return nil, err
	}

	sold, err := s.orders.ListItemsInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Current cost per yield of every item with a recipe bound. The report
	// uses today's recipe cost, not the cost at sale time.
	bound, err := s.items.ListWithRecipes(ctx)
	if err != nil {
		return nil, err
	}
	costByItem := make(map[uuid.UUID]decimal.Decimal, len(bound))
	names := make(map[uuid.UUID]string, len(bound))
	for _, it := range bound {
		names[it.ID] = it.Name
		if it.Recipe != nil {
			costByItem[it.ID] = it.Recipe.CostPerYield
		}
	}

	sales := make([]costing.SaleLine, 0, len(sold))
	for _, line := range sold {
		if line.MenuItem != nil {
			names[line.MenuItemID] = line.MenuItem.Name
		}
		sales = append(sales, costing.SaleLine{
			ItemID:    line.MenuItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	report := costing.ComputeCMV(sales, costByItem)

	resp := &dto.CMVReportResponse{
		From:       filter.From,
		To:         filter.To,
		Revenue:    costing.RoundCurrency(report.Revenue),
		Cost:       costing.RoundCurrency(report.Cost),
		CMVPercent: report.CMVPercent.Round(2),
		Items:      make([]dto.ItemCMVResponse, 0, len(report.Items)),
		Warnings:   make([]dto.CMVWarning, 0, len(report.MissingRecipe)),
	}
	for _, it := range report.Items {
		resp.Items = append(resp.Items, dto.ItemCMVResponse{
			MenuItemID: it.ItemID.String(),
			Name:       names[it.ItemID],
			Quantity:   it.Quantity,
			Revenue:    costing.RoundCurrency(it.Revenue),
			Cost:       costing.RoundCurrency(it.Cost),
			CMVPercent: it.CMVPercent.Round(2),
		})
	}
	for _, id := range report.MissingRecipe {
		resp.Warnings = append(resp.Warnings, dto.CMVWarning{
			MenuItemID: id.String(),
			Name:       names[id],
		})
	}
	return resp, nil
}

func (s *reportService) Summary(ctx context.Context, filter dto.ReportWindowFilter) (*dto.SummaryReportResponse, error) {
	from, to, err := parseWindow(filter)
	if err != nil {
		return nil, err
	}

	entries, err := s.caixa.ListEntriesInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.SummaryReportResponse{
		From:     filter.From,
		To:       filter.To,
		Sales:    decimal.Zero,
		Revenues: decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, e := range entries {
		switch e.Kind {
		case "sale", "cancellation":
			resp.Sales = resp.Sales.Add(e.Amount)
		case "revenue":
			resp.Revenues = resp.Revenues.Add(e.Amount)
		case "expense":
			// stored negative; report as a positive outflow
			resp.Expenses = resp.Expenses.Add(e.Amount.Neg())
		}
	}
	resp.Balance = resp.Sales.Add(resp.Revenues).Sub(resp.Expenses)
	return resp, nil
}

// parseWindow accepts RFC 3339 timestamps or bare dates; a bare "to" date is
// exclusive of the following midnight, so from=2026-08-01&to=2026-09-01
// covers exactly August.
func parseWindow(filter dto.ReportWindowFilter) (time.Time, time.Time, error) {
	from, err := parseWindowBound(filter.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from: %s", costing.ErrValidation, filter.From)
	}
	to, err := parseWindowBound(filter.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to: %s", costing.ErrValidation, filter.To)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to must be after from", costing.ErrValidation)
	}
	return from, to, nil
}

func parseWindowBound(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
