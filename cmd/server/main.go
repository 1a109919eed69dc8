package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/config"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/gateway"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/handlers"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/messaging"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/middleware"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
)

func main() {
	log.Println("🚀 Starting Shipment Tracking Service...")

	cfg := config.Load()

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer db.Close()

	// Event publishing is best effort: a broker outage must never keep
	// shipment traffic from being served.
	var publisher messaging.EventPublisher
	rabbitClient := messaging.NewRabbitMQClient(messaging.NewRabbitMQConfig())
	if err := rabbitClient.Connect(); err != nil {
		log.Printf("RabbitMQ unavailable, events disabled: %v", err)
	} else {
		defer rabbitClient.Close()
		publisher = messaging.NewPublisher(rabbitClient)
	}

	mailer := gateway.NewBrevoMailer(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.MailTimeout)
	qrRenderer := gateway.NewPNGQRRenderer()

	shipmentStore := repository.NewPostgresShipmentStore(db)
	userStore := repository.NewPostgresUserStore(db)
	facilityStore := repository.NewPostgresFacilityStore(db)
	statusStore := repository.NewPostgresStatusStore(db)
	slideStore := repository.NewPostgresMessageSlideStore(db)

	qrService := service.NewQRService(shipmentStore, qrRenderer, cfg.TrackingBaseURL)
	notificationService := service.NewNotificationService(userStore, mailer, cfg.TrackingBaseURL, cfg.AdminPanelURL)
	shipmentService := service.NewShipmentService(shipmentStore, qrService, notificationService, publisher)

	shipmentHandler := handlers.NewShipmentHandler(shipmentService)
	facilityHandler := handlers.NewFacilityHandler(facilityStore)
	statusHandler := handlers.NewStatusHandler(statusStore)
	slideHandler := handlers.NewMessageSlideHandler(slideStore)

	app := setupFiberApp()
	setupRoutes(app, cfg, shipmentHandler, facilityHandler, statusHandler, slideHandler)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Shutting down Shipment Tracking Service...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🌍 Shipment Tracking Service running on: http://localhost:%s", cfg.Port)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server startup error: %v", err)
	}
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("database open error: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping error: %v", err)
	}

	log.Printf("✅ Database connection successful: %s", cfg.DBName)
	return db, nil
}

func setupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Shipment Tracking Service v1.0",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	return app
}

func setupRoutes(
	app *fiber.App,
	cfg *config.Config,
	shipmentHandler *handlers.ShipmentHandler,
	facilityHandler *handlers.FacilityHandler,
	statusHandler *handlers.StatusHandler,
	slideHandler *handlers.MessageSlideHandler,
) {
	auth := middleware.RequireAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staffOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAgent, domain.RoleEmployee)
	adminOrEmployee := middleware.RequireRoles(domain.RoleAdmin, domain.RoleEmployee)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "shipment-tracking-service",
		})
	})

	shipments := api.Group("/shipments")
	shipments.Get("/track/:trackingNumber", shipmentHandler.TrackShipment)
	shipments.Get("/mine", auth, shipmentHandler.GetMyShipments)
	shipments.Get("/", auth, staffOnly, shipmentHandler.GetAllShipments)
	shipments.Post("/", auth, adminOnly, shipmentHandler.CreateShipment)
	shipments.Post("/qrcodes/backfill", auth, adminOnly, shipmentHandler.GenerateMissingQRCodes)
	shipments.Put("/:id", auth, shipmentHandler.EditShipment)
	shipments.Delete("/:id", auth, adminOnly, shipmentHandler.DeleteShipment)
	shipments.Patch("/:id/status", auth, staffOnly, shipmentHandler.ChangeShipmentStatus)
	shipments.Post("/:id/replies", auth, shipmentHandler.ReplyToShipment)

	facilities := api.Group("/facilities")
	facilities.Get("/", facilityHandler.GetFacilities)
	facilities.Get("/active", facilityHandler.GetActiveFacilities)
	facilities.Get("/:id", facilityHandler.GetFacility)
	facilities.Post("/", auth, adminOrEmployee, facilityHandler.CreateFacility)
	facilities.Put("/:id", auth, adminOrEmployee, facilityHandler.UpdateFacility)
	facilities.Patch("/:id/toggle-status", auth, adminOrEmployee, facilityHandler.ToggleFacilityStatus)
	facilities.Delete("/:id", auth, adminOrEmployee, facilityHandler.DeleteFacility)

	statuses := api.Group("/statuses")
	statuses.Get("/", statusHandler.GetStatuses)
	statuses.Get("/active", statusHandler.GetActiveStatuses)
	statuses.Get("/:id", statusHandler.GetStatus)
	statuses.Post("/", auth, adminOrEmployee, statusHandler.CreateStatus)
	statuses.Put("/:id", auth, adminOrEmployee, statusHandler.UpdateStatus)
	statuses.Patch("/:id/toggle-active", auth, adminOrEmployee, statusHandler.ToggleStatusActive)
	statuses.Delete("/:id", auth, adminOrEmployee, statusHandler.DeleteStatus)

	slides := api.Group("/messageslides")
	slides.Get("/", slideHandler.GetAllSlides)
	slides.Get("/active", slideHandler.GetActiveSlides)
	slides.Put("/bulk/toggle-status", auth, adminOnly, slideHandler.BulkToggleSlides)
	slides.Get("/:id", slideHandler.GetSlide)
	slides.Post("/", auth, adminOnly, slideHandler.CreateSlide)
	slides.Put("/:id", auth, adminOnly, slideHandler.UpdateSlide)
	slides.Delete("/:id", auth, adminOnly, slideHandler.DeleteSlide)

	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}
