package database

import (
	"fmt"

	"sellor-api/internal/model"
	"sellor-api/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(cfg *config.Config) error {
	var err error

	// Configure Postgres options. PreferSimpleProtocol disables implicit
	// prepared statement usage to avoid "prepared statement already exists"
	// errors behind connection poolers.
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.DB.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure the connection pool. Registration holds one of these
	// connections for the duration of its transaction.
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	return Migrate(db)
}

// Migrate creates or updates the table structure for all models. The
// unique indexes on vendors.email and stores.subdomain are the final
// arbiter for concurrent registrations racing past the handler pre-checks.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(&model.Store{}, &model.Vendor{}, &model.Product{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// SetDB replaces the database instance. Used by tests to inject an
// in-memory database.
func SetDB(d *gorm.DB) {
	db = d
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
