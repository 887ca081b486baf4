package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// PriceQuote is the output of the pricing calculator for one menu item.
type PriceQuote struct {
	SuggestedPrice decimal.Decimal
	GrossProfit    decimal.Decimal
	ActualMargin   decimal.Decimal
}

// SuggestPrice derives a sale price from a per-portion cost and a desired
// margin expressed as a percentage OF THE PRICE (margin, not markup):
//
//	suggested = cost / (1 - margin/100)
//
// The margin must satisfy 0 ≤ margin < 100; 100 would divide by zero.
// ActualMargin is recomputed from the outputs rather than echoed back, so
// desired and realized margin always go through the same arithmetic.
func SuggestPrice(costPerYield, desiredMargin decimal.Decimal) (*PriceQuote, error) {
	if desiredMargin.IsNegative() || desiredMargin.GreaterThanOrEqual(oneHundred) {
		return nil, ErrInvalidMargin
	}
	if costPerYield.IsNegative() {
		return nil, ErrNegativeCost
	}

	factor := decimal.NewFromInt(1).Sub(desiredMargin.Div(oneHundred))
	suggested := costPerYield.Div(factor)
	profit := suggested.Sub(costPerYield)

	actual := decimal.Zero
	if suggested.IsPositive() {
		actual = profit.Div(suggested).Mul(oneHundred)
	}

	return &PriceQuote{
		SuggestedPrice: suggested,
		GrossProfit:    profit,
		ActualMargin:   actual,
	}, nil
}

// Pricing is the resolved pricing state of a menu item after a bind call.
// Exactly one of the two modes applies:
//
//   - Manual: Price was set directly; the snapshot fields keep whatever
//     informational values they had before (stale but visible, never
//     authoritative).
//   - Auto: Price equals the freshly computed suggested price and the
//     snapshot fields are rewritten as of this call.
type Pricing struct {
	Manual bool
	Price  decimal.Decimal

	RecipeID       *uuid.UUID
	DesiredMargin  *decimal.Decimal
	SuggestedPrice *decimal.Decimal
	CostPrice      *decimal.Decimal
	GrossProfit    *decimal.Decimal
	ActualMargin   *decimal.Decimal
}

// BindManual prices an item by hand. The price must not be negative.
// The previous snapshot fields are carried through untouched.
func BindManual(price decimal.Decimal, previous Pricing) (*Pricing, error) {
	if price.IsNegative() {
		return nil, ErrNegativeCost
	}
	p := previous
	p.Manual = true
	p.Price = price
	return &p, nil
}

// BindAuto prices an item from its recipe cost and a desired margin. The
// whole snapshot (price, cost price, gross profit, actual margin) is
// recomputed; calling it twice with the same inputs yields identical output.
func BindAuto(recipeID uuid.UUID, costPerYield, desiredMargin decimal.Decimal) (*Pricing, error) {
	quote, err := SuggestPrice(costPerYield, desiredMargin)
	if err != nil {
		return nil, err
	}
	price := RoundCurrency(quote.SuggestedPrice)
	suggested := price
	costPrice := RoundCurrency(costPerYield)
	profit := RoundCurrency(quote.GrossProfit)
	margin := quote.ActualMargin.Round(4)
	rid := recipeID
	return &Pricing{
		Manual:         false,
		Price:          price,
		RecipeID:       &rid,
		DesiredMargin:  &desiredMargin,
		SuggestedPrice: &suggested,
		CostPrice:      &costPrice,
		GrossProfit:    &profit,
		ActualMargin:   &margin,
	}, nil
}

// Unbind detaches the recipe from an item's pricing. An item without a
// recipe cannot be auto-priced, so the result is forced into manual mode at
// the current price; the recipe reference and margin are cleared while the
// informational snapshots remain readable.
func Unbind(current Pricing) Pricing {
	p := current
	p.Manual = true
	p.RecipeID = nil
	p.DesiredMargin = nil
	return p
}
