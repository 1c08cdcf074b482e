package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres pool through pgx, wraps it with gorm and migrates the schema.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	pgxCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		// close the pool if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig(cfg.IsDevelopment()))
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database_connected", "host", pgxCfg.Host, "database", pgxCfg.Database)
	return db, nil
}

// GormConfig is shared by the server and the repository tests.
func GormConfig(verbose bool) *gorm.Config {
	level := gormlogger.Silent
	if verbose {
		level = gormlogger.Warn
	}
	return &gorm.Config{
		// references between books and reviews are maintained by the services
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(level),
	}
}

// Migrate creates or updates the users, books and reviews tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Book{}, &models.Review{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
