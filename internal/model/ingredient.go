package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a purchasable input of the kitchen. CostPerUnit is the
// current purchase cost per native unit; editing it does NOT recompute the
// recipes that reference the ingredient — their costs are snapshots taken at
// recipe save time, refreshed only by an explicit recost.
type Ingredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	Unit         string          `gorm:"type:varchar(10);not null"` // "kg" | "g" | "l" | "ml" | "un"
	CostPerUnit  decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Supplier     *string
	MinStock     *decimal.Decimal `gorm:"type:decimal(12,3)"`
	CurrentStock *decimal.Decimal `gorm:"type:decimal(12,3)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Ingredient) TableName() string { return "ingredients" }
