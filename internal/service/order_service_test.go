package service

import (
	"context"
	"testing"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	items  *fakeMenuItemRepo
	caixa  *fakeCaixaRepo
	orders *fakeOrderRepo
	svc    OrderService
}

func newOrderFixture() *orderFixture {
	items := newFakeMenuItemRepo(nil)
	caixa := newFakeCaixaRepo()
	orders := newFakeOrderRepo(items)
	return &orderFixture{
		items:  items,
		caixa:  caixa,
		orders: orders,
		svc:    NewOrderService(orders, items, caixa),
	}
}

func (f *orderFixture) addItem(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	m := &model.MenuItem{Name: name, Category: "lanches", Price: dec(price),
		ManualPricing: true, Active: true, Visible: true}
	require.NoError(t, f.items.Create(context.Background(), m))
	return m.ID
}

func (f *orderFixture) openCaixa(t *testing.T) uuid.UUID {
	t.Helper()
	s := &model.CaixaSession{UserID: uuid.New(), OpeningAmount: dec("100"), Status: "open"}
	require.NoError(t, f.caixa.CreateSession(context.Background(), s))
	return s.ID
}

func TestPlaceOrderRequiresOpenCaixa(t *testing.T) {
	f := newOrderFixture()
	itemID := f.addItem(t, "X-Burger", "12.00")

	_, err := f.svc.Place(context.Background(), uuid.New(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: itemID.String(), Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestPlaceOrderSnapshotsPricesAndBooksSale(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	sessionID := f.openCaixa(t)
	burger := f.addItem(t, "X-Burger", "12.00")
	suco := f.addItem(t, "Suco de laranja", "8.00")

	resp, err := f.svc.Place(ctx, uuid.New(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{
			{MenuItemID: burger.String(), Quantity: dec("2")},
			{MenuItemID: suco.String(), Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Number)
	assert.Equal(t, "completed", resp.Status)
	assert.True(t, resp.Total.Equal(dec("32.00")))
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("12.00")))
	assert.True(t, resp.Items[0].Subtotal.Equal(dec("24.00")))

	// a later price edit must not rewrite the sold order
	f.items.items[burger].Price = dec("20.00")
	got, err := f.svc.Get(ctx, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, got.Items[0].UnitPrice.Equal(dec("12.00")))

	entries, err := f.caixa.ListEntries(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sale", entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(dec("32.00")))
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, resp.ID, entries[0].ReferenceID.String())
}

func TestPlaceOrderNumbersAreSequential(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.openCaixa(t)
	itemID := f.addItem(t, "X-Burger", "12.00")

	req := dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: itemID.String(), Quantity: dec("1")}},
	}
	first, err := f.svc.Place(ctx, uuid.New(), req)
	require.NoError(t, err)
	second, err := f.svc.Place(ctx, uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Number+1, second.Number)
}

func TestPlaceOrderRejectsInactiveItem(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.openCaixa(t)
	itemID := f.addItem(t, "X-Burger", "12.00")
	f.items.items[itemID].Active = false

	_, err := f.svc.Place(ctx, uuid.New(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: itemID.String(), Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, costing.ErrValidation)
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	f := newOrderFixture()
	f.openCaixa(t)

	_, err := f.svc.Place(context.Background(), uuid.New(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: uuid.NewString(), Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOrderBooksInverseEntry(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	sessionID := f.openCaixa(t)
	itemID := f.addItem(t, "X-Burger", "12.00")

	placed, err := f.svc.Place(ctx, uuid.New(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: itemID.String(), Quantity: dec("2")}},
	})
	require.NoError(t, err)
	orderID := uuid.MustParse(placed.ID)

	cancelled, err := f.svc.Cancel(ctx, orderID, dto.CancelOrderRequest{Reason: "pedido errado"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	entries, err := f.caixa.ListEntries(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 2, "the sale entry stays; the cancellation is an inverse entry")
	assert.Equal(t, "sale", entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(dec("24.00")))
	assert.Equal(t, "cancellation", entries[1].Kind)
	assert.True(t, entries[1].Amount.Equal(dec("-24.00")))

	sum, err := f.caixa.SumEntries(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestCancelOrderTwiceRejected(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.openCaixa(t)
	itemID := f.addItem(t, "X-Burger", "12.00")

	placed, err := f.svc.Place(ctx, uuid.New(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: itemID.String(), Quantity: dec("1")}},
	})
	require.NoError(t, err)
	orderID := uuid.MustParse(placed.ID)

	_, err = f.svc.Cancel(ctx, orderID, dto.CancelOrderRequest{Reason: "erro"})
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, orderID, dto.CancelOrderRequest{Reason: "erro"})
	assert.ErrorIs(t, err, costing.ErrValidation)
}
