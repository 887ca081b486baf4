package service

import (
	"context"
	"fmt"
	"strings"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"
	"donmenu/internal/repository"

	"github.com/google/uuid"
)

// IngredientService is the business contract for the ingredient ledger.
type IngredientService interface {
	Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error)
	List(ctx context.Context, filter dto.IngredientFilter) (*dto.IngredientListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", costing.ErrValidation)
	}
	if req.CostPerUnit.IsNegative() {
		return nil, costing.ErrNegativeCost
	}
	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	ing := &model.Ingredient{
		Name:         name,
		Unit:         req.Unit,
		CostPerUnit:  req.CostPerUnit,
		Supplier:     req.Supplier,
		MinStock:     req.MinStock,
		CurrentStock: req.CurrentStock,
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ingredientToResponse(ing), nil
}

func (s *ingredientService) Get(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return ingredientToResponse(ing), nil
}

func (s *ingredientService) List(ctx context.Context, filter dto.IngredientFilter) (*dto.IngredientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.IngredientResponse, 0, len(list))
	for i := range list {
		data = append(data, *ingredientToResponse(&list[i]))
	}
	return &dto.IngredientListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit,
	}, nil
}

// Update applies partial edits. Changing cost_per_unit deliberately does NOT
// cascade into recipes — their line costs stay as saved snapshots until an
// explicit recost (see RecipeService.Recost).
func (s *ingredientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", costing.ErrValidation)
		}
		if name != ing.Name {
			if existing, err := s.repo.FindByName(ctx, name); err == nil && existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
			}
			ing.Name = name
		}
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.CostPerUnit != nil {
		if req.CostPerUnit.IsNegative() {
			return nil, costing.ErrNegativeCost
		}
		ing.CostPerUnit = *req.CostPerUnit
	}
	if req.Supplier != nil {
		ing.Supplier = req.Supplier
	}
	if req.MinStock != nil {
		ing.MinStock = req.MinStock
	}
	if req.CurrentStock != nil {
		ing.CurrentStock = req.CurrentStock
	}

	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ingredientToResponse(ing), nil
}

func (s *ingredientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	refs, err := s.repo.CountRecipeReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: ingredient appears in %d recipe line(s)", ErrReferentialConflict, refs)
	}
	return s.repo.Delete(ctx, id)
}

func ingredientToResponse(i *model.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:           i.ID.String(),
		Name:         i.Name,
		Unit:         i.Unit,
		CostPerUnit:  i.CostPerUnit,
		Supplier:     i.Supplier,
		MinStock:     i.MinStock,
		CurrentStock: i.CurrentStock,
	}
}
