package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/restroworks/restropos-api/internal/config"
	"github.com/restroworks/restropos-api/internal/domain/entity"
)

// NewConnection opens the configured database. Postgres is the normal
// deployment; the sqlite driver covers single-terminal installs where no
// database server runs on the LAN.
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	default:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("driver", cfg.Driver).Msg("database connected")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Master data
		&entity.Outlet{},
		&entity.OutletSettings{},
		&entity.Department{},
		&entity.Table{},
		&entity.MenuItem{},
		&entity.TaxRate{},

		// People
		&entity.User{},
		&entity.Customer{},

		// Transactions
		&entity.Bill{},
		&entity.BillItem{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData creates the default outlet, its departments and tax rates,
// and an admin user when configured. Safe to run on every startup.
func SeedDefaultData(db *gorm.DB) error {
	var outlet entity.Outlet
	if err := db.First(&outlet, "code = ?", "MAIN").Error; err != nil {
		outlet = entity.Outlet{Name: "Main Outlet", Code: "MAIN"}
		if err := db.Create(&outlet).Error; err != nil {
			return fmt.Errorf("failed to seed default outlet: %w", err)
		}
	}

	var settings entity.OutletSettings
	if err := db.First(&settings, "outlet_id = ?", outlet.ID).Error; err != nil {
		settings = entity.OutletSettings{
			OutletID:         outlet.ID,
			ShowKOTNoOnBill:  true,
			ShowTaxBreakup:   true,
			PrintKOTOnSave:   true,
			ShowItemNotes:    true,
			ShowCustomerInfo: true,
			DefaultPax:       2,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed outlet settings")
		}
	}

	for _, name := range []string{"Restaurant", "AC Hall", "Garden"} {
		var dept entity.Department
		if err := db.Where("name = ? AND outlet_id = ?", name, outlet.ID).First(&dept).Error; err != nil {
			dept = entity.Department{Name: name, OutletID: outlet.ID}
			if err := db.Create(&dept).Error; err != nil {
				log.Warn().Err(err).Str("department", name).Msg("failed to seed department")
				continue
			}
		}
		var rate entity.TaxRate
		if err := db.Where("outlet_id = ? AND department_id = ?", outlet.ID, dept.ID).First(&rate).Error; err != nil {
			// Standard restaurant GST split: 2.5% CGST + 2.5% SGST
			rate = entity.TaxRate{
				OutletID:     outlet.ID,
				DepartmentID: dept.ID,
				CGSTPct:      2.5,
				SGSTPct:      2.5,
			}
			if err := db.Create(&rate).Error; err != nil {
				log.Warn().Err(err).Str("department", name).Msg("failed to seed tax rate")
			}
		}
	}

	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminUsername != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("username = ?", adminUsername).First(&existing).Error; err != nil {
			admin := entity.User{
				Username: adminUsername,
				FullName: "Administrator",
				Role:     entity.RoleAdmin,
				OutletID: outlet.ID,
				IsActive: true,
			}
			if err := admin.SetPassword(adminPassword); err != nil {
				return fmt.Errorf("failed to hash admin password: %w", err)
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Warn().Err(err).Msg("failed to seed admin user")
			} else {
				log.Info().Str("username", adminUsername).Msg("admin user created")
			}
		}
	}

	log.Info().Msg("default data seeding completed")
	return nil
}
