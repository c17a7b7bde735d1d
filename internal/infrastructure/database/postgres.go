package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/sangkips/servicecenter-api/internal/config"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the store selected by cfg.Driver
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "postgres":
		return NewPostgresDB(cfg, debug)
	case "sqlite":
		return NewSQLiteDB(cfg.SQLitePath, debug)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormConfig(debug bool) *gorm.Config {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Staff{},
		&entity.Customer{},
		&entity.StockBatch{},
		&entity.ServiceRecord{},
		&entity.StockConsumption{},
		&entity.InvoiceSequence{},
		&entity.Invoice{},
		&entity.ProductPrice{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the invoice counter and, when configured and no
// staff exists yet, the first owner account
func SeedDefaultData(db *gorm.DB, bootstrap config.BootstrapConfig) error {
	log.Println("Seeding default data...")

	seq := entity.InvoiceSequence{Name: entity.DefaultInvoiceSequence}
	if err := db.Where("name = ?", seq.Name).FirstOrCreate(&seq).Error; err != nil {
		return fmt.Errorf("failed to seed invoice sequence: %w", err)
	}

	if bootstrap.OwnerEmail == "" || bootstrap.OwnerPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(bootstrap.OwnerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}
	name := bootstrap.OwnerName
	if name == "" {
		name = "Owner"
	}
	owner := entity.Staff{
		Name:     name,
		Email:    strings.ToLower(bootstrap.OwnerEmail),
		Password: hashed,
		Role:     enum.StaffRoleOwner,
		IsActive: true,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Printf("Warning: failed to create owner account: %v", err)
		return nil
	}
	log.Printf("Owner account created: %s", owner.Email)
	return nil
}
