package model

import (
	"time"

	"github.com/google/uuid"
)

// ClosureReport tracks the async generation and delivery of a caixa closing
// report (PDF + optional email). Status: "pending" | "delivered" | "error".
// Failed deliveries are retried by the retry cron with exponential backoff
// until MaxRetries, then parked in "error" for manual re-dispatch.
type ClosureReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PDFPath   *string
	Email     *string
	Status    string `gorm:"type:varchar(20);not null;default:'pending'"`

	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"index"`
	LastError   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClosureReport) TableName() string { return "closure_reports" }
