package service

import (
	"context"
	"fmt"
	"time"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"
	"donmenu/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// Place registers a sale against the open caixa session. The order, its
	// items and the matching caixa entry commit in one transaction.
	Place(ctx context.Context, userID uuid.UUID, req dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	// Cancel marks the order cancelled and books an inverse caixa entry;
	// the original sale entry stays untouched.
	Cancel(ctx context.Context, id uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	orders repository.OrderRepository
	items  repository.MenuItemRepository
	caixa  repository.CaixaRepository
}

func NewOrderService(orders repository.OrderRepository, items repository.MenuItemRepository, caixa repository.CaixaRepository) OrderService {
	return &orderService{orders: orders, items: items, caixa: caixa}
}

func (s *orderService) Place(ctx context.Context, userID uuid.UUID, req dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	session, err := s.caixa.FindOpenSession(ctx)
	if err != nil {
		return nil, ErrNoOpenSession
	}

	order := &model.Order{
		CaixaSessionID: session.ID,
		UserID:         userID,
		Status:         "completed",
		Note:           req.Note,
		Total:          decimal.Zero,
	}

	for _, line := range req.Items {
		itemID, parseErr := uuid.Parse(line.MenuItemID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid menu_item_id", costing.ErrValidation)
		}
		menuItem, findErr := s.items.FindByID(ctx, itemID)
		if findErr != nil {
			return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, itemID)
		}
		if !menuItem.Active {
			return nil, fmt.Errorf("%w: menu item %q is inactive", costing.ErrValidation, menuItem.Name)
		}
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive", costing.ErrValidation)
		}

		// Snapshot the current sale price; later price edits must not
		// rewrite sold orders.
		subtotal := costing.RoundCurrency(menuItem.Price.Mul(line.Quantity))
		order.Items = append(order.Items, model.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			Subtotal:   subtotal,
		})
		order.Total = order.Total.Add(subtotal)
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		number, txErr := s.orders.NextOrderNumber(ctx, tx)
		if txErr != nil {
			return txErr
		}
		order.Number = number
		if txErr := s.orders.Create(ctx, tx, order); txErr != nil {
			return txErr
		}
		orderID := order.ID
		return s.caixa.CreateEntryTx(tx, &model.CaixaEntry{
			SessionID:   session.ID,
			Kind:        "sale",
			Amount:      order.Total,
			Description: fmt.Sprintf("Venda #%d", order.Number),
			ReferenceID: &orderID,
		})
	})
	if err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orderService) Cancel(ctx context.Context, id uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if order.Status == "cancelled" {
		return nil, fmt.Errorf("%w: order #%d is already cancelled", costing.ErrValidation, order.Number)
	}

	session, err := s.caixa.FindOpenSession(ctx)
	if err != nil {
		return nil, ErrNoOpenSession
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if txErr := s.orders.UpdateStatusTx(tx, order.ID, "cancelled"); txErr != nil {
			return txErr
		}
		orderID := order.ID
		// Entries are immutable; the cancellation books the inverse amount.
		return s.caixa.CreateEntryTx(tx, &model.CaixaEntry{
			SessionID:   session.ID,
			Kind:        "cancellation",
			Amount:      order.Total.Neg(),
			Description: fmt.Sprintf("Cancelamento venda #%d: %s", order.Number, req.Reason),
			ReferenceID: &orderID,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = "cancelled"
	return orderToResponse(order), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:             o.ID.String(),
		Number:         o.Number,
		CaixaSessionID: o.CaixaSessionID.String(),
		Total:          o.Total,
		Status:         o.Status,
		Note:           o.Note,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		Items:          make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		name := ""
		if it.MenuItem != nil {
			name = it.MenuItem.Name
		}
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			MenuItemID: it.MenuItemID.String(),
			Name:       name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
		})
	}
	return resp
}
