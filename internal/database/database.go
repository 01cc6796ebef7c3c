package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/config"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate creates the schema if needed and seeds the fixed roles. Safe
// to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Player{},
		&models.MatchRecord{},
		&models.Session{},
		&models.SystemLog{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	for _, name := range authz.All() {
		var role models.Role
		err := db.Where(models.Role{Name: string(name)}).
			Attrs(models.Role{ID: uuid.New()}).
			FirstOrCreate(&role).Error
		if err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
