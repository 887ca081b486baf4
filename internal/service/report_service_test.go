package service

import (
	"context"
	"testing"
	"time"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	ingredients *fakeIngredientRepo
	recipes     *fakeRecipeRepo
	items       *fakeMenuItemRepo
	caixa       *fakeCaixaRepo
	orders      *fakeOrderRepo
	svc         ReportService
}

func newReportFixture() *reportFixture {
	ingredients := newFakeIngredientRepo()
	recipes := newFakeRecipeRepo(ingredients)
	items := newFakeMenuItemRepo(recipes)
	caixa := newFakeCaixaRepo()
	orders := newFakeOrderRepo(items)
	return &reportFixture{
		ingredients: ingredients,
		recipes:     recipes,
		items:       items,
		caixa:       caixa,
		orders:      orders,
		svc:         NewReportService(orders, items, caixa),
	}
}

func (f *reportFixture) addItem(t *testing.T, name, price string, costPerYield string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	m := &model.MenuItem{Name: name, Category: "lanches", Price: dec(price),
		ManualPricing: true, Active: true, Visible: true}
	if costPerYield != "" {
		r := &model.Recipe{Name: name, YieldQuantity: dec("1"), YieldUnit: "un",
			TotalCost: dec(costPerYield), CostPerYield: dec(costPerYield)}
		require.NoError(t, f.recipes.SaveWithLines(ctx, r, nil))
		m.RecipeID = &r.ID
		m.ManualPricing = false
	}
	require.NoError(t, f.items.Create(ctx, m))
	return m.ID
}

func (f *reportFixture) sell(t *testing.T, itemID uuid.UUID, qty, unitPrice string, at time.Time, status string) {
	t.Helper()
	o := &model.Order{
		Number: int64(len(f.orders.orders) + 1), CaixaSessionID: uuid.New(),
		UserID: uuid.New(), Status: status, CreatedAt: at,
		Total: dec(unitPrice).Mul(dec(qty)),
		Items: []model.OrderItem{{
			MenuItemID: itemID, Quantity: dec(qty), UnitPrice: dec(unitPrice),
			Subtotal: dec(unitPrice).Mul(dec(qty)),
		}},
	}
	require.NoError(t, f.orders.Create(context.Background(), nil, o))
}

func window(from, to time.Time) dto.ReportWindowFilter {
	return dto.ReportWindowFilter{
		From: from.Format(time.RFC3339),
		To:   to.Format(time.RFC3339),
	}
}

func TestCMVReport(t *testing.T) {
	f := newReportFixture()
	now := time.Now()

	burger := f.addItem(t, "X-Burger", "12.00", "4.80")
	suco := f.addItem(t, "Suco de laranja", "8.00", "")

	f.sell(t, burger, "10", "12.00", now, "completed")
	f.sell(t, suco, "5", "8.00", now, "completed")
	// cancelled orders never count
	f.sell(t, burger, "100", "12.00", now, "cancelled")
	// outside the window
	f.sell(t, burger, "50", "12.00", now.Add(-48*time.Hour), "completed")

	resp, err := f.svc.CMV(context.Background(), window(now.Add(-time.Hour), now.Add(time.Hour)))
	require.NoError(t, err)

	// revenue 120 + 40 = 160; cost 10×4.80 = 48 → CMV 30%
	assert.True(t, resp.Revenue.Equal(dec("160.00")))
	assert.True(t, resp.Cost.Equal(dec("48.00")))
	assert.True(t, resp.CMVPercent.Equal(dec("30")))

	require.Len(t, resp.Items, 2)
	byName := map[string]dto.ItemCMVResponse{}
	for _, it := range resp.Items {
		byName[it.Name] = it
	}
	assert.True(t, byName["X-Burger"].CMVPercent.Equal(dec("40")))
	assert.True(t, byName["Suco de laranja"].Cost.IsZero())

	require.Len(t, resp.Warnings, 1, "items sold without a recipe are flagged")
	assert.Equal(t, suco.String(), resp.Warnings[0].MenuItemID)
	assert.Equal(t, "Suco de laranja", resp.Warnings[0].Name)
}

func TestCMVReportEmptyWindow(t *testing.T) {
	f := newReportFixture()
	now := time.Now()

	resp, err := f.svc.CMV(context.Background(), window(now.Add(-time.Hour), now))
	require.NoError(t, err)
	assert.True(t, resp.Revenue.IsZero())
	assert.True(t, resp.CMVPercent.IsZero(), "no revenue means no meaningful CMV")
	assert.Empty(t, resp.Items)
	assert.Empty(t, resp.Warnings)
}

func TestCMVReportRejectsInvertedWindow(t *testing.T) {
	f := newReportFixture()
	now := time.Now()

	_, err := f.svc.CMV(context.Background(), window(now, now.Add(-time.Hour)))
	assert.ErrorIs(t, err, costing.ErrValidation)
}

func TestReportWindowAcceptsBareDates(t *testing.T) {
	f := newReportFixture()

	_, err := f.svc.CMV(context.Background(), dto.ReportWindowFilter{From: "2026-08-01", To: "2026-09-01"})
	assert.NoError(t, err)

	_, err = f.svc.CMV(context.Background(), dto.ReportWindowFilter{From: "01/08/2026", To: "2026-09-01"})
	assert.ErrorIs(t, err, costing.ErrValidation)
}

func TestSummaryReport(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()
	now := time.Now()
	sessionID := uuid.New()

	add := func(kind, amount string) {
		require.NoError(t, f.caixa.CreateEntry(ctx, &model.CaixaEntry{
			SessionID: sessionID, Kind: kind, Amount: dec(amount), Description: kind,
		}))
	}
	add("sale", "100")
	add("cancellation", "-20")
	add("revenue", "50")
	add("expense", "-30")

	resp, err := f.svc.Summary(ctx, window(now.Add(-time.Hour), now.Add(time.Hour)))
	require.NoError(t, err)

	assert.True(t, resp.Sales.Equal(dec("80")), "cancellations net against sales")
	assert.True(t, resp.Revenues.Equal(dec("50")))
	assert.True(t, resp.Expenses.Equal(dec("30")), "expenses reported as positive outflow")
	assert.True(t, resp.Balance.Equal(dec("100")))
}
