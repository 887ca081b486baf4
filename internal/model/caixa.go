package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaixaSession bounds a set of revenue/expense records between an open and a
// close event. Status: "open" | "closed". Closing is a single guarded state
// transition that computes the expected balance and records the difference
// against the operator's declared amount in the same update.
type CaixaSession struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	OpeningAmount  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ExpectedAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DeclaredAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Difference     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status         string           `gorm:"type:varchar(10);not null;default:'open'"`
	Note           *string
	OpenedAt       time.Time
	ClosedAt       *time.Time

	Entries []CaixaEntry `gorm:"foreignKey:SessionID"`
	User    *User        `gorm:"foreignKey:UserID"`
}

func (CaixaSession) TableName() string { return "caixa_sessions" }

// CaixaEntry is an immutable bookkeeping event inside a session.
// Kind: "sale" | "revenue" | "expense" | "cancellation". Entries are never
// updated or deleted — corrections create inverse entries.
type CaixaEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"` // signed: expenses are negative
	Description string          `gorm:"not null"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid"` // originating order, when kind is sale/cancellation
	CreatedAt   time.Time
}

func (CaixaEntry) TableName() string { return "caixa_entries" }
