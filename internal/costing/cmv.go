package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLine is one sold line fed into the CMV aggregator. The caller supplies
// the full window's lines up front; the engine does not paginate or stream.
type SaleLine struct {
	ItemID    uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// ItemCMV is the per-product breakdown entry, same formula as the overall
// figure scoped to one item.
type ItemCMV struct {
	ItemID     uuid.UUID
	Quantity   decimal.Decimal
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	CMVPercent decimal.Decimal
}

// CMVReport aggregates a sales window against recipe-derived unit costs.
// MissingRecipe lists items that were sold but have no cost bound to them —
// a data-quality condition surfaced to the caller, never an error: those
// sales contribute full revenue and zero cost.
type CMVReport struct {
	Revenue       decimal.Decimal
	Cost          decimal.Decimal
	CMVPercent    decimal.Decimal
	Items         []ItemCMV
	MissingRecipe []uuid.UUID
}

// ComputeCMV computes the realized cost-of-goods-sold percentage for a
// window of sales. costByItem maps item id → current cost per yield unit of
// the item's recipe; items absent from the map are costed at zero and
// reported in MissingRecipe.
func ComputeCMV(sales []SaleLine, costByItem map[uuid.UUID]decimal.Decimal) *CMVReport {
	report := &CMVReport{
		Revenue: decimal.Zero,
		Cost:    decimal.Zero,
	}

	perItem := make(map[uuid.UUID]*ItemCMV)
	order := make([]uuid.UUID, 0, len(sales))
	missing := make(map[uuid.UUID]bool)

	for _, s := range sales {
		revenue := s.UnitPrice.Mul(s.Quantity)
		unitCost, bound := costByItem[s.ItemID]
		cost := decimal.Zero
		if bound {
			cost = unitCost.Mul(s.Quantity)
		} else if !missing[s.ItemID] {
			missing[s.ItemID] = true
			report.MissingRecipe = append(report.MissingRecipe, s.ItemID)
		}

		report.Revenue = report.Revenue.Add(revenue)
		report.Cost = report.Cost.Add(cost)

		entry, ok := perItem[s.ItemID]
		if !ok {
			entry = &ItemCMV{ItemID: s.ItemID}
			perItem[s.ItemID] = entry
			order = append(order, s.ItemID)
		}
		entry.Quantity = entry.Quantity.Add(s.Quantity)
		entry.Revenue = entry.Revenue.Add(revenue)
		entry.Cost = entry.Cost.Add(cost)
	}

	report.CMVPercent = cmvPercent(report.Cost, report.Revenue)
	for _, id := range order {
		entry := perItem[id]
		entry.CMVPercent = cmvPercent(entry.Cost, entry.Revenue)
		report.Items = append(report.Items, *entry)
	}
	return report
}

// cmvPercent is (cost / revenue) × 100, or zero when either side is not
// positive (a window with no revenue has no meaningful CMV).
func cmvPercent(cost, revenue decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() || !revenue.IsPositive() {
		return decimal.Zero
	}
	return cost.Div(revenue).Mul(oneHundred)
}
