package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dispensary-pos/internal/model"
	"dispensary-pos/pkg/config"
)

// Open opens the relational backend (embedded SQLite by default,
// Postgres when configured), applies pool settings, and runs the
// schema migration. The returned handle is the single connection
// owner; callers pass it down rather than reaching for a global.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.DB.LogLevel),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pgConfig := postgres.Config{
			DSN:                  cfg.DB.GetDSN(),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		}
		db, err = gorm.Open(postgres.New(pgConfig), gormConfig)
	default:
		db, err = gorm.Open(sqlite.Open(cfg.DB.SQLitePath), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate declares the relational schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.Employee{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryTransaction{},
		&model.CatalogListing{},
		&model.Dispensary{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}
