package costing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one ingredient entry of a ficha técnica at computation time.
// UnitCost must be the ingredient's CURRENT cost per unit — the caller
// resolves it immediately before calling ComputeRecipeCost so that a stale
// read can never leak into the snapshot.
type Line struct {
	IngredientID   uuid.UUID
	Quantity       decimal.Decimal
	Unit           string
	IngredientUnit string
	UnitCost       decimal.Decimal
}

// LineCost is a costed line: the quantity × unit-cost snapshot that gets
// persisted alongside the recipe.
type LineCost struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	Unit         string
	Cost         decimal.Decimal
}

// RecipeCost is the derived cost tuple of a recipe. TotalCost and
// CostPerYield are exact (unrounded) decimals; rounding to currency
// precision happens only at the persistence/display boundary.
type RecipeCost struct {
	TotalCost    decimal.Decimal
	CostPerYield decimal.Decimal
	Lines        []LineCost
}

// ComputeRecipeCost aggregates the ingredient lines of a recipe into a total
// cost and a per-yield-unit cost.
//
// Each line cost is quantity × current unit cost; the total is their sum
// (order is irrelevant). The yield quantity must be strictly positive —
// otherwise ErrInvalidYield — and every line quantity strictly positive,
// with the line unit exactly matching the ingredient's native unit.
func ComputeRecipeCost(yieldQuantity decimal.Decimal, lines []Line) (*RecipeCost, error) {
	if !yieldQuantity.IsPositive() {
		return nil, ErrInvalidYield
	}

	total := decimal.Zero
	costed := make([]LineCost, 0, len(lines))
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line quantity must be greater than zero", ErrValidation)
		}
		if l.UnitCost.IsNegative() {
			return nil, ErrNegativeCost
		}
		if l.IngredientUnit != "" && l.Unit != l.IngredientUnit {
			return nil, ErrUnitMismatch
		}
		cost := l.Quantity.Mul(l.UnitCost)
		total = total.Add(cost)
		costed = append(costed, LineCost{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         l.Unit,
			Cost:         cost,
		})
	}

	return &RecipeCost{
		TotalCost:    total,
		CostPerYield: total.Div(yieldQuantity),
		Lines:        costed,
	}, nil
}

// RoundCurrency rounds a derived amount to 2 decimal places, half away from
// zero. Applied once, at the storage/display boundary — never between
// intermediate steps, so rounding error cannot compound across many lines.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
