package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ananth-NQI/billpe-backend/database"
	"github.com/Ananth-NQI/billpe-backend/internal/config"
	"github.com/Ananth-NQI/billpe-backend/internal/handlers"
	"github.com/Ananth-NQI/billpe-backend/internal/middleware"
	"github.com/Ananth-NQI/billpe-backend/internal/routes"
	"github.com/Ananth-NQI/billpe-backend/internal/services"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize storage
	store, err := database.OpenStore(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}
	defer store.Close()

	// Initialize services
	sentLog := services.NewSentLog(store)
	formatter := services.NewFormatter(cfg.Gateway.CurrencySymbol)
	gateway := services.NewGatewayClient(store, sentLog, formatter, services.GatewayOptions{
		Timeout:     cfg.Gateway.Timeout,
		CountryCode: cfg.Gateway.DefaultCountryCode,
	})
	log.Println("✅ WhatsApp gateway client initialized")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "BillPe Backend v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:request_id}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	routes.SetupRoutes(app, cfg.APIToken,
		handlers.NewHealthHandler(version, cfg.Storage.Driver),
		handlers.NewWhatsAppHandler(store, gateway, sentLog),
	)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 BillPe Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", cfg.Storage.Driver)
	log.Printf("🌍 Environment: %s", cfg.Environment)
	log.Printf("🔒 API token: %s", authStatus(cfg.APIToken))
	log.Println("========================================")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}

func authStatus(token string) string {
	if token == "" {
		return "Disabled (development)"
	}
	return "Required"
}
