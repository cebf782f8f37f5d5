package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"lexbook/internal/caching"
	"lexbook/internal/config"
	"lexbook/internal/handlers"
	"lexbook/internal/jobs/background"
	"lexbook/internal/middleware"
	"lexbook/internal/models"
	"lexbook/internal/repositories"
	"lexbook/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Database connection pool
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	// Apply startup migration if present
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Printf("migration file not found, skipping: %v", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		log.Printf("migration warning: %v", err)
	} else {
		log.Println("migration applied")
	}

	// Cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	serviceRepo := repositories.NewServiceRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	contactRepo := repositories.NewContactRepo(pool)

	// Seed the services catalog; inserts are idempotent and existing rows win
	if err := seedCatalog(context.Background(), serviceRepo); err != nil {
		log.Printf("catalog seed warning: %v", err)
	}

	// Outbound mail: real SMTP when configured, log-only otherwise
	var mailer services.Mailer = services.LogMailer{}
	if cfg.SMTPAddr != "" {
		mailer = &services.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}
	}

	// Services
	tokenSvc := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	notifier := services.NewNotificationService(mailer, cfg.FirmEmail, cfg.FirmName)
	catalogSvc := services.NewCatalogService(serviceRepo, cacheSvc)
	bookingSvc := services.NewBookingService(bookingRepo, serviceRepo)
	contactSvc := services.NewContactService(contactRepo, notifier)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, tokenSvc)
	serviceHandlers := handlers.NewServiceHandlers(catalogSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc)
	contactHandlers := handlers.NewContactHandlers(contactSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Auth middleware: cookie first, then bearer header
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc, userRepo)

	// Background jobs
	scheduler, err := background.NewJobScheduler(bookingRepo, serviceRepo, contactRepo, notifier)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	// Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(authMiddleware.Authenticate())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Public routes
	e.POST("/register", authHandlers.Register)
	e.POST("/login", authHandlers.Login)
	e.POST("/logout", authHandlers.Logout)
	e.GET("/services", serviceHandlers.ListServices)
	e.GET("/services/:id", serviceHandlers.GetService)
	e.POST("/contact", contactHandlers.SubmitContact)

	// Protected routes
	protected := e.Group("", authMiddleware.RequireAuth())
	protected.GET("/user", authHandlers.Me)
	protected.GET("/bookings", bookingHandlers.ListBookings)
	protected.POST("/bookings", bookingHandlers.CreateBooking)
	protected.GET("/bookings/:id", bookingHandlers.GetBooking)
	protected.PUT("/bookings/:id", bookingHandlers.UpdateBooking)
	protected.PATCH("/bookings/:id", bookingHandlers.UpdateBooking)
	protected.DELETE("/bookings/:id", bookingHandlers.DeleteBooking)
	protected.GET("/contact", contactHandlers.ListContacts)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("http server stopped: %v", err)
		}
	}()
	log.Printf("lexbook listening on :%s", cfg.Port)

	// Graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	if err := e.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func seedCatalog(ctx context.Context, repo repositories.ServiceRepository) error {
	defaults := []*models.Service{
		{ID: uuid.New(), Name: "Initial Consultation", Price: 100},
		{ID: uuid.New(), Name: "Family Law Consultation", Price: 250},
		{ID: uuid.New(), Name: "Criminal Defense Consultation", Price: 300},
		{ID: uuid.New(), Name: "Corporate Legal Review", Price: 500},
		{ID: uuid.New(), Name: "Property Law Consultation", Price: 275},
	}
	for _, svc := range defaults {
		if err := repo.Create(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}
