package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a completed sale. It is always registered against an open caixa
// session; item prices are snapshotted from the menu at order time so later
// price edits do not rewrite history. Status: "completed" | "cancelled".
type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number         int64           `gorm:"uniqueIndex;not null"`
	CaixaSessionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'completed'"`
	Note           *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
	User  *User       `gorm:"foreignKey:UserID"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one sold line — the {item, quantity, unit_price, timestamp}
// record the CMV aggregator consumes.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}

func (OrderItem) TableName() string { return "order_items" }
