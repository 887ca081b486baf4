package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx wraps fn in a database transaction. With a nil db (unit tests run
// against in-memory repositories) fn executes directly with a nil tx and the
// repositories are expected to ignore it.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
