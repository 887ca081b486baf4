package service

import (
	"context"
	"fmt"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"
	"donmenu/internal/repository"

	"github.com/google/uuid"
)

// MenuService is the business contract for cardápio items, including the
// pricing binder that switches items between manual and recipe-derived
// pricing.
type MenuService interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error)
	List(ctx context.Context, filter dto.MenuItemFilter) (*dto.MenuItemListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// BindPricing applies the pricing mode of req to the item. Binding is
	// idempotent: identical inputs always produce identical stored fields.
	BindPricing(ctx context.Context, id uuid.UUID, req dto.BindPricingRequest) (*dto.MenuItemResponse, error)
	// UnbindRecipe detaches the recipe; the item is forced into manual
	// pricing at its current price.
	UnbindRecipe(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error)
	PublicMenu(ctx context.Context, restaurant string) (*dto.PublicMenuResponse, error)
}

type menuService struct {
	repo    repository.MenuItemRepository
	recipes repository.RecipeRepository
}

func NewMenuService(repo repository.MenuItemRepository, recipes repository.RecipeRepository) MenuService {
	return &menuService{repo: repo, recipes: recipes}
}

func (s *menuService) Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if req.Price.IsNegative() {
		return nil, costing.ErrNegativeCost
	}
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	item := &model.MenuItem{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		ManualPricing: true, // items start manual until a recipe is bound
		Active:        true,
		Visible:       visible,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) Get(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) List(ctx context.Context, filter dto.MenuItemFilter) (*dto.MenuItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		data = append(data, *menuItemToResponse(&items[i]))
	}
	return &dto.MenuItemListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *menuService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Visible != nil {
		item.Visible = *req.Visible
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *menuService) BindPricing(ctx context.Context, id uuid.UUID, req dto.BindPricingRequest) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	var pricing *costing.Pricing
	if req.ManualPricing {
		if req.ManualPrice == nil {
			return nil, fmt.Errorf("%w: manual_price is required when manual_pricing is true", costing.ErrValidation)
		}
		// Informational snapshots survive the switch to manual —
		// stale but visible, never authoritative.
		pricing, err = costing.BindManual(*req.ManualPrice, pricingFromItem(item))
		if err != nil {
			return nil, err
		}
		// A recipe may stay attached for reference while manually priced.
		pricing.RecipeID = item.RecipeID
		pricing.DesiredMargin = item.DesiredMargin
	} else {
		if req.RecipeID == nil || req.DesiredMargin == nil {
			return nil, fmt.Errorf("%w: recipe_id and desired_margin are required for auto pricing", costing.ErrValidation)
		}
		recipeID, parseErr := uuid.Parse(*req.RecipeID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid recipe_id", costing.ErrValidation)
		}
		recipe, findErr := s.recipes.FindByID(ctx, recipeID)
		if findErr != nil {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		pricing, err = costing.BindAuto(recipe.ID, recipe.CostPerYield, *req.DesiredMargin)
		if err != nil {
			return nil, err
		}
	}

	applyPricing(item, *pricing)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) UnbindRecipe(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	unbound := costing.Unbind(pricingFromItem(item))
	applyPricing(item, unbound)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) PublicMenu(ctx context.Context, restaurant string) (*dto.PublicMenuResponse, error) {
	items, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.PublicMenuResponse{Restaurant: restaurant, Items: make([]dto.PublicMenuItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PublicMenuItem{
			Name:        it.Name,
			Description: it.Description,
			Category:    it.Category,
			Price:       it.Price,
		})
	}
	return resp, nil
}

// ── Pricing mapping ──────────────────────────────────────────────────────────

func pricingFromItem(item *model.MenuItem) costing.Pricing {
	return costing.Pricing{
		Manual:         item.ManualPricing,
		Price:          item.Price,
		RecipeID:       item.RecipeID,
		DesiredMargin:  item.DesiredMargin,
		SuggestedPrice: item.SuggestedPrice,
		CostPrice:      item.CostPrice,
		GrossProfit:    item.GrossProfit,
		ActualMargin:   item.ActualMargin,
	}
}

func applyPricing(item *model.MenuItem, p costing.Pricing) {
	item.ManualPricing = p.Manual
	item.Price = p.Price
	item.RecipeID = p.RecipeID
	item.DesiredMargin = p.DesiredMargin
	item.SuggestedPrice = p.SuggestedPrice
	item.CostPrice = p.CostPrice
	item.GrossProfit = p.GrossProfit
	item.ActualMargin = p.ActualMargin
}

func menuItemToResponse(m *model.MenuItem) *dto.MenuItemResponse {
	var recipeID *string
	if m.RecipeID != nil {
		rid := m.RecipeID.String()
		recipeID = &rid
	}
	return &dto.MenuItemResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		Description:    m.Description,
		Category:       m.Category,
		Price:          m.Price,
		RecipeID:       recipeID,
		DesiredMargin:  m.DesiredMargin,
		ManualPricing:  m.ManualPricing,
		SuggestedPrice: m.SuggestedPrice,
		CostPrice:      m.CostPrice,
		GrossProfit:    m.GrossProfit,
		ActualMargin:   m.ActualMargin,
		Active:         m.Active,
		Visible:        m.Visible,
	}
}
