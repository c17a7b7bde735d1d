package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/config"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/infrastructure/database"
	"github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
	"github.com/sangkips/servicecenter-api/internal/infrastructure/scheduler"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/handler"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/routes"
	"github.com/sangkips/servicecenter-api/pkg/notify"
	"github.com/sangkips/servicecenter-api/pkg/printer"
	"github.com/sangkips/servicecenter-api/pkg/utils"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db, cfg.Bootstrap); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	if err := handler.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Repositories
	staffRepo := repository.NewStaffRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	stockRepo := repository.NewStockRepository(db)
	serviceRepo := repository.NewServiceRecordRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	priceRepo := repository.NewProductPriceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	sender := notify.NewWhatsAppSender(notify.WhatsAppConfig{
		APIURL:  cfg.WhatsApp.APIURL,
		APIKey:  cfg.WhatsApp.APIKey,
		Timeout: cfg.WhatsApp.Timeout,
	})

	reminderLocation, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		log.Printf("Warning: unknown reminder timezone %q, using UTC: %v", cfg.Reminder.Timezone, err)
		reminderLocation = time.UTC
	}

	receiptPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address, cfg.Printer.Timeout)
	if err != nil {
		log.Fatalf("Failed to configure receipt printer: %v", err)
	}

	// Services
	authService := service.NewAuthService(staffRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	inventoryService := service.NewInventoryService(stockRepo)
	serviceRecordService := service.NewServiceRecordService(serviceRepo, customerRepo, inventoryService)
	invoiceService := service.NewInvoiceService(invoiceRepo, serviceRepo, sender, service.InvoiceSettings{
		Prefix:          cfg.Invoice.Prefix,
		DefaultGSTRate:  decimal.NewFromFloat(cfg.Invoice.DefaultGSTRate),
		MessageTemplate: cfg.WhatsApp.InvoiceTemplate,
	})
	priceService := service.NewProductPriceService(priceRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, stockRepo)
	reminderService := service.NewReminderService(serviceRepo, sender, cfg.Reminder.Template, reminderLocation)
	receiptService := service.NewReceiptService(invoiceRepo, receiptPrinter, entity.ReceiptHeader{
		ShopName: cfg.Printer.ShopName,
		Address:  cfg.Printer.ShopAddress,
		Phone:    cfg.Printer.ShopPhone,
		GSTIN:    cfg.Printer.ShopGSTIN,
	}, cfg.Printer.Width)

	if cfg.Reminder.Schedule != "" {
		jobs := scheduler.New(reminderLocation, 5*time.Minute)
		err := jobs.Add("service-due-reminders", cfg.Reminder.Schedule, func(ctx context.Context) error {
			_, err := reminderService.SendDueReminders(ctx)
			return err
		})
		if err != nil {
			log.Fatalf("Failed to schedule reminders: %v", err)
		}
		jobs.Start()
		defer jobs.Stop()
	}

	// Periodically drop expired idempotency keys
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: failed to purge idempotency keys: %v", err)
			}
		}
	}()

	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg.App.Env == "production"),
		Customer:     handler.NewCustomerHandler(customerService),
		Service:      handler.NewServiceHandler(serviceRecordService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Stock:        handler.NewStockHandler(inventoryService),
		ProductPrice: handler.NewProductPriceHandler(priceService),
		Dashboard:    handler.NewDashboardHandler(dashboardService, reminderService),
		Receipt:      handler.NewReceiptHandler(receiptService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s (database: %s)", cfg.App.Env, cfg.Database.Driver)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
