package database

import (
	"fmt"
	"time"

	"github.com/lshigami/quizbank/config"
	"github.com/lshigami/quizbank/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the postgres connection string from config.
func DSN(cfg config.Database) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// NewDatabase opens a pooled postgres connection. It returns a nil *gorm.DB when the
// memory store is selected.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		log.Info().Msg("STORE_DRIVER=memory, skipping postgres connection")
		return nil, nil
	}
	return Open(DSN(cfg.Database))
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// AutoMigrate creates or updates the tables backing the quiz models.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Subject{},
		&model.Question{},
		&model.Test{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
