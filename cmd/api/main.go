package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/infrastructure/database"
	"github.com/sangkips/dinehub-api/internal/infrastructure/repository"
	"github.com/sangkips/dinehub-api/internal/presentation/http/handler"
	"github.com/sangkips/dinehub-api/internal/presentation/http/routes"
	"github.com/sangkips/dinehub-api/internal/realtime"
	"github.com/sangkips/dinehub-api/pkg/email"
	"github.com/sangkips/dinehub-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.POS.DefaultVATPercent); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lineRepo := repository.NewOrderLineRepository(db)
	dishRepo := repository.NewDishRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	tableRepo := repository.NewTableRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	zReportRepo := repository.NewZReportRepository(db)
	voidRepo := repository.NewVoidRequestRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	historyRepo := repository.NewPointHistoryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		AlertEmail:   cfg.Email.AlertEmail,
	})

	// Initialize the realtime publisher. Without Redis the API still
	// works, only live kitchen and floor updates are dropped.
	var publisher realtime.Publisher = realtime.NopPublisher{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Warning: Redis unavailable, realtime updates disabled: %v", err)
		} else {
			publisher = realtime.NewRedisPublisher(redisClient)
		}
	}

	// Initialize services
	approvalService := service.NewApprovalService(userRepo, auditRepo)
	inventoryService := service.NewInventoryService(materialRepo, recipeRepo, movementRepo, lineRepo, emailService)
	invoiceService := service.NewInvoiceService(txManager, invoiceRepo, paymentRepo, orderRepo, lineRepo, voidRepo, settingsRepo, approvalService, cfg.POS)
	orderService := service.NewOrderService(txManager, orderRepo, lineRepo, dishRepo, tableRepo, reservationRepo, inventoryService, invoiceService, approvalService, publisher, cfg.POS)
	paymentService := service.NewPaymentService(txManager, invoiceRepo, paymentRepo, orderRepo, tableRepo, shiftRepo, customerRepo, historyRepo, inventoryService, publisher, cfg.POS)
	shiftService := service.NewShiftService(txManager, shiftRepo, zReportRepo, paymentRepo, cfg.POS)
	voidService := service.NewVoidService(txManager, voidRepo, orderRepo, lineRepo, invoiceService, approvalService, publisher)
	authService := service.NewAuthService(userRepo, jwtManager)
	tableService := service.NewTableService(tableRepo, orderRepo, publisher)
	reservationService := service.NewReservationService(reservationRepo, tableRepo, cfg.POS)
	dishService := service.NewDishService(dishRepo, recipeRepo)
	customerService := service.NewCustomerService(customerRepo, historyRepo)

	// Periodic snapshot broadcasts keep late-joining clients in sync
	resyncer := realtime.NewResyncer(publisher, orderRepo, tableRepo, cfg.POS.ResyncInterval)
	go resyncer.Run(context.Background())

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Order:       handler.NewOrderHandler(orderService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Shift:       handler.NewShiftHandler(shiftService),
		Void:        handler.NewVoidHandler(voidService),
		Inventory:   handler.NewInventoryHandler(inventoryService),
		Table:       handler.NewTableHandler(tableService),
		Reservation: handler.NewReservationHandler(reservationService),
		Dish:        handler.NewDishHandler(dishService),
		Customer:    handler.NewCustomerHandler(customerService),
		Audit:       handler.NewAuditHandler(approvalService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
