package database

import (
	"fmt"
	"log/slog"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// service layer can map them to validation errors.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.IsDevelopment() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

// SeedAdmin creates the bootstrap superuser when ADMIN_USERNAME/ADMIN_EMAIL are
// configured and no such user exists yet. Idempotent.
func SeedAdmin(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ?", cfg.AdminUsername).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for bootstrap admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		Username:    cfg.AdminUsername,
		Email:       cfg.AdminEmail,
		Role:        models.RoleAdmin,
		IsSuperuser: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	logger.Info("Bootstrap admin created", "username", admin.Username)
	return nil
}
