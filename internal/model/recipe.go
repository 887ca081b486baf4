package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is a ficha técnica: a costed bill of materials yielding a
// per-portion cost. TotalCost and CostPerYield are derived — always rewritten
// together with the ingredient list in one transaction, never edited on their
// own, so a reader can never observe a header inconsistent with its lines.
type Recipe struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"index;not null"`
	YieldQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	YieldUnit     string          `gorm:"type:varchar(10);not null;default:'un'"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPerYield  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is one composition line. Cost is the quantity × unit-cost
// snapshot taken when the line was last saved; the line unit must match the
// ingredient's native unit (no conversion table exists).
type RecipeIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit         string          `gorm:"type:varchar(10);not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Position     int             `gorm:"not null;default:0"`
	CreatedAt    time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
