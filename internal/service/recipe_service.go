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

// RecipeService is the business contract for fichas técnicas. Every write to
// a recipe's ingredient list runs the costing engine and persists the header
// and the lines atomically — derived fields are never readable half-updated.
type RecipeService interface {
	Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error)
	List(ctx context.Context, page, limit int) (*dto.RecipeListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Recost re-runs the cost computation against CURRENT ingredient costs.
	// Recipe costs are snapshots — ingredient edits do not cascade, a
	// recost is the explicit way to refresh them.
	Recost(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error)
}

type recipeService struct {
	repo        repository.RecipeRepository
	ingredients repository.IngredientRepository
}

func NewRecipeService(repo repository.RecipeRepository, ingredients repository.IngredientRepository) RecipeService {
	return &recipeService{repo: repo, ingredients: ingredients}
}

func (s *recipeService) Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if !req.YieldQuantity.IsPositive() {
		return nil, costing.ErrInvalidYield
	}

	recipe := &model.Recipe{
		Name:          req.Name,
		YieldQuantity: req.YieldQuantity,
		YieldUnit:     req.YieldUnit,
	}
	lines, err := s.resolveAndCost(ctx, recipe, req.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLines(ctx, recipe, lines); err != nil {
		return nil, err
	}
	return s.Get(ctx, recipe.ID)
}

func (s *recipeService) Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return recipeToResponse(recipe), nil
}

func (s *recipeService) List(ctx context.Context, page, limit int) (*dto.RecipeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	recipes, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		data = append(data, *recipeToResponse(&recipes[i]))
	}
	return &dto.RecipeListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *recipeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.YieldQuantity != nil {
		if !req.YieldQuantity.IsPositive() {
			return nil, costing.ErrInvalidYield
		}
		recipe.YieldQuantity = *req.YieldQuantity
	}
	if req.YieldUnit != nil {
		recipe.YieldUnit = *req.YieldUnit
	}

	// When the caller did not send a new line list, recompute from the
	// existing lines (the yield may have changed); otherwise replace the
	// list entirely. Either way header + lines go down in one transaction.
	lineReqs := req.Ingredients
	if lineReqs == nil {
		lineReqs = make([]dto.RecipeLineRequest, 0, len(recipe.Ingredients))
		for _, l := range recipe.Ingredients {
			lineReqs = append(lineReqs, dto.RecipeLineRequest{
				IngredientID: l.IngredientID.String(),
				Quantity:     l.Quantity,
				Unit:         l.Unit,
			})
		}
	}
	recipe.Ingredients = nil
	lines, err := s.resolveAndCost(ctx, recipe, lineReqs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLines(ctx, recipe, lines); err != nil {
		return nil, err
	}
	return s.Get(ctx, recipe.ID)
}

func (s *recipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	refs, err := s.repo.CountMenuItemReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: recipe is bound to %d menu item(s)", ErrReferentialConflict, refs)
	}
	return s.repo.Delete(ctx, id)
}

func (s *recipeService) Recost(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	return s.Update(ctx, id, dto.UpdateRecipeRequest{})
}

// resolveAndCost re-fetches the CURRENT cost of every referenced ingredient,
// runs the costing engine and fills the recipe's derived fields plus the
// line snapshots. Monetary outputs are rounded to currency precision here,
// at the storage boundary — the engine itself never rounds.
func (s *recipeService) resolveAndCost(ctx context.Context, recipe *model.Recipe, lineReqs []dto.RecipeLineRequest) ([]model.RecipeIngredient, error) {
	ids := make([]uuid.UUID, 0, len(lineReqs))
	for _, lr := range lineReqs {
		id, err := uuid.Parse(lr.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ingredient_id %q", costing.ErrValidation, lr.IngredientID)
		}
		ids = append(ids, id)
	}

	byID := make(map[uuid.UUID]model.Ingredient, len(ids))
	if len(ids) > 0 {
		ingredients, err := s.ingredients.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, ing := range ingredients {
			byID[ing.ID] = ing
		}
	}

	engineLines := make([]costing.Line, 0, len(lineReqs))
	for i, lr := range lineReqs {
		ing, ok := byID[ids[i]]
		if !ok {
			return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, lr.IngredientID)
		}
		engineLines = append(engineLines, costing.Line{
			IngredientID:   ing.ID,
			Quantity:       lr.Quantity,
			Unit:           lr.Unit,
			IngredientUnit: ing.Unit,
			UnitCost:       ing.CostPerUnit,
		})
	}

	cost, err := costing.ComputeRecipeCost(recipe.YieldQuantity, engineLines)
	if err != nil {
		return nil, err
	}

	recipe.TotalCost = costing.RoundCurrency(cost.TotalCost)
	recipe.CostPerYield = costing.RoundCurrency(cost.CostPerYield)

	lines := make([]model.RecipeIngredient, 0, len(cost.Lines))
	for i, lc := range cost.Lines {
		lines = append(lines, model.RecipeIngredient{
			IngredientID: lc.IngredientID,
			Quantity:     lc.Quantity,
			Unit:         lc.Unit,
			Cost:         costing.RoundCurrency(lc.Cost),
			Position:     i,
		})
	}
	return lines, nil
}

func recipeToResponse(r *model.Recipe) *dto.RecipeResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		name := ""
		if l.Ingredient != nil {
			name = l.Ingredient.Name
		}
		lines = append(lines, dto.RecipeLineResponse{
			IngredientID:   l.IngredientID.String(),
			IngredientName: name,
			Quantity:       l.Quantity,
			Unit:           l.Unit,
			Cost:           l.Cost,
		})
	}
	return &dto.RecipeResponse{
		ID:            r.ID.String(),
		Name:          r.Name,
		YieldQuantity: r.YieldQuantity,
		YieldUnit:     r.YieldUnit,
		TotalCost:     r.TotalCost,
		CostPerYield:  r.CostPerYield,
		Ingredients:   lines,
	}
}
