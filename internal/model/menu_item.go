package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a sellable entry of the cardápio. Price is the authoritative
// sale price in both modes:
//
//   - ManualPricing=true: Price was set directly; SuggestedPrice, CostPrice,
//     GrossProfit and ActualMargin keep their last computed values as
//     informational snapshots (stale is expected, not a bug).
//   - ManualPricing=false: RecipeID and DesiredMargin are set and Price
//     equals the last computed SuggestedPrice until margin, recipe or mode
//     changes.
type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"not null;default:'geral'"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	RecipeID      *uuid.UUID       `gorm:"type:uuid;index"`
	DesiredMargin *decimal.Decimal `gorm:"type:decimal(5,2)"`
	ManualPricing bool             `gorm:"not null;default:true"`

	// Pricing snapshot as of the last bind — see costing.Pricing.
	SuggestedPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CostPrice      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	GrossProfit    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ActualMargin   *decimal.Decimal `gorm:"type:decimal(7,4)"`

	Active    bool `gorm:"not null;default:true"`
	Visible   bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

func (MenuItem) TableName() string { return "menu_items" }
