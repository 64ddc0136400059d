package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/applog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notifications"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.InvoiceExchange,
			Queue:    cfg.InvoiceQueue,
		})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		// Receipts go out by mail when SMTP is configured, otherwise they are logged.
		var sender notifications.Sender
		if cfg.SMTPHost != "" {
			sender = notifications.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		}
		mailer := notifications.NewReceiptMailer(sender, cfg.MailFrom)
		if err := mqClient.ConsumeEvents(mailer.HandleDelivery); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is empty. Invoice events are disabled.")
	}

	app, err := NewApp(cfg, db, publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires repositories, services and handlers on top of db and returns
// the Fiber app. A nil publisher disables invoice events.
func NewApp(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) (*fiber.App, error) {
	// --- Repositories ---
	store := repositories.NewGORMStore(db)
	sqlxDB, err := database.SQLX(db)
	if err != nil {
		return nil, err
	}
	reportRepo := repositories.NewSQLXReportRepository(sqlxDB)
	operatorRepo := repositories.NewGORMOperatorRepository(db)

	// --- Services ---
	categoryService := services.NewCategoryService(store.Categories())
	productService := services.NewProductService(store.Products(), store.Categories())
	customerService := services.NewCustomerService(store.Customers())
	cartService := services.NewCartService(store)
	invoiceService := services.NewInvoiceService(store, publisher, cfg.InvoiceExchange)
	reportService := services.NewReportService(reportRepo)
	authService := services.NewAuthService(operatorRepo, cfg.JWTSecret)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"status": "failed", "message": e.Message})
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status": "failed",
				"error":  "Internal server error",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})

	// --- API Routes ---
	api := app.Group("/api")

	var catalogGuards []fiber.Handler
	if cfg.AuthRequired {
		catalogGuards = append(catalogGuards, middleware.RequireOperator(authService))
	}

	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, catalogGuards...)
	handlers.NewProductHandler(productService).RegisterRoutes(api, catalogGuards...)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(api)
	handlers.NewCartHandler(cartService, invoiceService).RegisterRoutes(api)
	handlers.NewInvoiceHandler(invoiceService).RegisterRoutes(api)
	handlers.NewReportHandler(reportService).RegisterRoutes(api)

	return app, nil
}
