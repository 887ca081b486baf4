package service

import (
	"context"
	"testing"

	"donmenu/internal/costing"
	"donmenu/internal/dto"
	"donmenu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeFixture struct {
	ingredients *fakeIngredientRepo
	recipes     *fakeRecipeRepo
	svc         RecipeService
}

func newRecipeFixture() *recipeFixture {
	ingredients := newFakeIngredientRepo()
	recipes := newFakeRecipeRepo(ingredients)
	return &recipeFixture{
		ingredients: ingredients,
		recipes:     recipes,
		svc:         NewRecipeService(recipes, ingredients),
	}
}

func (f *recipeFixture) addIngredient(t *testing.T, name, unit, cost string) uuid.UUID {
	t.Helper()
	ing := &model.Ingredient{Name: name, Unit: unit, CostPerUnit: dec(cost)}
	require.NoError(t, f.ingredients.Create(context.Background(), ing))
	return ing.ID
}

func TestRecipeCreateComputesCost(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	pao := f.addIngredient(t, "Pão", "un", "0.90")
	carne := f.addIngredient(t, "Carne", "kg", "32.50")
	queijo := f.addIngredient(t, "Queijo", "kg", "45.00")

	resp, err := f.svc.Create(ctx, dto.CreateRecipeRequest{
		Name:          "X-Burger",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: pao.String(), Quantity: dec("1"), Unit: "un"},
			{IngredientID: carne.String(), Quantity: dec("0.1"), Unit: "kg"},
			{IngredientID: queijo.String(), Quantity: dec("0.014"), Unit: "kg"},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalCost.Equal(dec("4.78")), "total %s", resp.TotalCost)
	assert.True(t, resp.CostPerYield.Equal(dec("4.78")))
	require.Len(t, resp.Ingredients, 3)
	assert.Equal(t, "Pão", resp.Ingredients[0].IngredientName)
	assert.True(t, resp.Ingredients[1].Cost.Equal(dec("3.25")))
	assert.True(t, resp.Ingredients[2].Cost.Equal(dec("0.63")))
}

func TestRecipeCostDividesByYield(t *testing.T) {
	f := newRecipeFixture()
	carne := f.addIngredient(t, "Carne", "kg", "30.00")

	resp, err := f.svc.Create(context.Background(), dto.CreateRecipeRequest{
		Name:          "Molho à bolonhesa",
		YieldQuantity: dec("4"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: carne.String(), Quantity: dec("1"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalCost.Equal(dec("30.00")))
	assert.True(t, resp.CostPerYield.Equal(dec("7.50")))
}

func TestRecipeCreateRejectsBadYield(t *testing.T) {
	f := newRecipeFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateRecipeRequest{
		Name: "Vazia", YieldQuantity: decimal.Zero, YieldUnit: "un",
	})
	assert.ErrorIs(t, err, costing.ErrInvalidYield)
}

func TestRecipeCreateRejectsUnitMismatch(t *testing.T) {
	f := newRecipeFixture()
	carne := f.addIngredient(t, "Carne", "kg", "32.50")

	_, err := f.svc.Create(context.Background(), dto.CreateRecipeRequest{
		Name:          "X-Burger",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: carne.String(), Quantity: dec("100"), Unit: "g"},
		},
	})
	assert.ErrorIs(t, err, costing.ErrUnitMismatch)
}

func TestRecipeCreateUnknownIngredient(t *testing.T) {
	f := newRecipeFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateRecipeRequest{
		Name:          "Fantasma",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: uuid.NewString(), Quantity: dec("1"), Unit: "un"},
		},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

// Editing an ingredient's cost must not silently rewrite recipes; the stored
// snapshot only moves on an explicit recost.
func TestRecipeCostIsSnapshotUntilRecost(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	carne := f.addIngredient(t, "Carne", "kg", "30.00")

	created, err := f.svc.Create(ctx, dto.CreateRecipeRequest{
		Name:          "Hambúrguer",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: carne.String(), Quantity: dec("0.2"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	require.True(t, created.TotalCost.Equal(dec("6.00")))
	recipeID := uuid.MustParse(created.ID)

	// the price of meat goes up
	ing := f.ingredients.items[carne]
	ing.CostPerUnit = dec("40.00")

	unchanged, err := f.svc.Get(ctx, recipeID)
	require.NoError(t, err)
	assert.True(t, unchanged.TotalCost.Equal(dec("6.00")), "stored cost is a snapshot")

	recosted, err := f.svc.Recost(ctx, recipeID)
	require.NoError(t, err)
	assert.True(t, recosted.TotalCost.Equal(dec("8.00")))
	assert.True(t, recosted.CostPerYield.Equal(dec("8.00")))
}

func TestRecipeUpdateReplacesLinesAtomically(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	pao := f.addIngredient(t, "Pão", "un", "1.00")
	carne := f.addIngredient(t, "Carne", "kg", "30.00")

	created, err := f.svc.Create(ctx, dto.CreateRecipeRequest{
		Name:          "Sanduíche",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: pao.String(), Quantity: dec("1"), Unit: "un"},
		},
	})
	require.NoError(t, err)
	recipeID := uuid.MustParse(created.ID)

	updated, err := f.svc.Update(ctx, recipeID, dto.UpdateRecipeRequest{
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: pao.String(), Quantity: dec("2"), Unit: "un"},
			{IngredientID: carne.String(), Quantity: dec("0.1"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 2)
	assert.True(t, updated.TotalCost.Equal(dec("5.00")))
}

func TestRecipeUpdateYieldRecomputesFromExistingLines(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	carne := f.addIngredient(t, "Carne", "kg", "30.00")

	created, err := f.svc.Create(ctx, dto.CreateRecipeRequest{
		Name:          "Molho",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: carne.String(), Quantity: dec("1"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	recipeID := uuid.MustParse(created.ID)

	newYield := dec("4")
	updated, err := f.svc.Update(ctx, recipeID, dto.UpdateRecipeRequest{YieldQuantity: &newYield})
	require.NoError(t, err)
	assert.True(t, updated.TotalCost.Equal(dec("30.00")))
	assert.True(t, updated.CostPerYield.Equal(dec("7.50")))
	assert.Len(t, updated.Ingredients, 1, "omitting ingredients keeps the existing lines")
}

func TestRecipeUpdateRejectsZeroYield(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	carne := f.addIngredient(t, "Carne", "kg", "30.00")

	created, err := f.svc.Create(ctx, dto.CreateRecipeRequest{
		Name:          "Molho",
		YieldQuantity: dec("2"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: carne.String(), Quantity: dec("1"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	recipeID := uuid.MustParse(created.ID)

	zero := decimal.Zero
	_, err = f.svc.Update(ctx, recipeID, dto.UpdateRecipeRequest{YieldQuantity: &zero})
	require.ErrorIs(t, err, costing.ErrInvalidYield)

	// rejected update leaves the stored recipe untouched
	got, err := f.svc.Get(ctx, recipeID)
	require.NoError(t, err)
	assert.True(t, got.YieldQuantity.Equal(dec("2")))
	assert.True(t, got.CostPerYield.Equal(dec("15.00")))
}

func TestRecipeDeleteRefusedWhileBound(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	carne := f.addIngredient(t, "Carne", "kg", "30.00")

	created, err := f.svc.Create(ctx, dto.CreateRecipeRequest{
		Name:          "Hambúrguer",
		YieldQuantity: dec("1"),
		YieldUnit:     "un",
		Ingredients: []dto.RecipeLineRequest{
			{IngredientID: carne.String(), Quantity: dec("0.2"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	recipeID := uuid.MustParse(created.ID)

	f.recipes.menuRefs[recipeID] = 1
	assert.ErrorIs(t, f.svc.Delete(ctx, recipeID), ErrReferentialConflict)

	f.recipes.menuRefs[recipeID] = 0
	require.NoError(t, f.svc.Delete(ctx, recipeID))
	_, err = f.svc.Get(ctx, recipeID)
	assert.ErrorIs(t, err, ErrNotFound)
}
