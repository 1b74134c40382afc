package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/marketplace-admin-api/internal/config"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	pkgLogger "github.com/sjperalta/marketplace-admin-api/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the pooled PostgreSQL connection and verifies it is reachable
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.Environment == "production" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:                 pkgLogger.NewGormLogger(logLevel, cfg.DBSlowQuery),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables owned by this service.
// The unique (seller_id, timeframe) index backs the upsert's ON CONFLICT target.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.OverrideRecord{},
		&models.AnalyticsCache{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if !db.Migrator().HasIndex(&models.OverrideRecord{}, "idx_seller_fake_stats_seller_timeframe") {
		return fmt.Errorf("failed to migrate database: missing unique index on seller_fake_stats")
	}
	return nil
}
