package database

import (
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Menu and floor entities
		&entity.Dish{},
		&entity.DishOption{},
		&entity.Table{},
		&entity.Reservation{},

		// Inventory entities
		&entity.Material{},
		&entity.RecipeLine{},
		&entity.StockMovement{},

		// Transaction entities
		&entity.Order{},
		&entity.OrderLine{},
		&entity.OrderLineOption{},
		&entity.Invoice{},
		&entity.Payment{},
		&entity.PaymentDetail{},

		// Loyalty entities
		&entity.Customer{},
		&entity.PointHistory{},

		// Cash-register entities
		&entity.Shift{},
		&entity.ZReport{},
		&entity.ZReportLine{},

		// Workflow and system entities
		&entity.VoidRequest{},
		&entity.AuditLog{},
		&entity.SystemSetting{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// One ACTIVE shift per cashier; status 0 = ACTIVE
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_active_per_cashier " +
			"ON shifts (cashier_id) WHERE status = 0",
	).Error; err != nil {
		return fmt.Errorf("failed to create shift uniqueness index: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles,
// permissions, VAT rate, admin user)
func SeedDefaultData(db *gorm.DB, defaultVATPercent int) error {
	log.Println("Seeding default data...")

	permissions := []entity.Permission{
		{Name: "manage-orders", GuardName: "web"},
		{Name: "void-items", GuardName: "web"},
		{Name: "approve-voids", GuardName: "web"},
		{Name: "apply-discounts", GuardName: "web"},
		{Name: "manage-payments", GuardName: "web"},
		{Name: "manage-shifts", GuardName: "web"},
		{Name: "manage-inventory", GuardName: "web"},
		{Name: "manage-menu", GuardName: "web"},
		{Name: "manage-tables", GuardName: "web"},
		{Name: "manage-customers", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	seedRole := func(name string, perms []entity.Permission) {
		var role entity.Role
		if err := db.Where("name = ?", name).First(&role).Error; err != nil {
			role = entity.Role{Name: name, GuardName: "web", Permissions: perms}
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Warning: failed to create %s role: %v", name, err)
			}
		}
	}

	seedRole("admin", allPermissions)
	seedRole("manager", pick(
		"manage-orders", "void-items", "approve-voids", "apply-discounts",
		"manage-payments", "manage-shifts", "manage-inventory", "manage-menu",
		"manage-tables", "manage-customers", "view-reports",
	))
	seedRole("cashier", pick(
		"manage-orders", "manage-payments", "manage-shifts", "manage-customers",
	))
	seedRole("waiter", pick("manage-orders", "manage-customers"))

	// VAT rate lives in system settings so it can change without a deploy
	var vat entity.SystemSetting
	if err := db.Where("key = ?", entity.SettingVATRate).First(&vat).Error; err != nil {
		vat = entity.SystemSetting{Key: entity.SettingVATRate, Value: strconv.Itoa(defaultVATPercent)}
		if err := db.Create(&vat).Error; err != nil {
			log.Printf("Warning: failed to seed VAT rate: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var adminRole entity.Role
				if err := db.Where("name = ?", "admin").First(&adminRole).Error; err == nil {
					if adminName == "" {
						adminName = "Admin"
					}
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{adminRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
