package infra

import (
	"fmt"
	"time"

	"donmenu/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the Postgres connection, tunes the pool and migrates the
// schema. gen_random_uuid() needs the pgcrypto extension on Postgres < 13.
func NewDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return nil, fmt.Errorf("create pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.MenuItem{},
		&model.CaixaSession{},
		&model.CaixaEntry{},
		&model.Order{},
		&model.OrderItem{},
		&model.ClosureReport{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	// Order numbers come from a sequence so they survive deletes and stay
	// strictly increasing across concurrent transactions.
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1").Error; err != nil {
		return nil, fmt.Errorf("create order_number_seq: %w", err)
	}

	return db, nil
}
