package app

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "printstore/docs"
	"printstore/internal/config"
	"printstore/internal/handlers"
	"printstore/internal/middleware"
	"printstore/internal/pdf"
	"printstore/internal/repositories"
	"printstore/internal/routes"
	"printstore/internal/scheduler"
	"printstore/internal/services"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close the database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewPasswordResetTokenRepository(db)
	attemptRepo := repositories.NewPasswordResetAttemptRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	alertService := services.NewAlertService(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)

	userService := services.NewUserService(userRepo, emailService, authService)
	resetService := services.NewPasswordResetService(
		userRepo, tokenRepo, attemptRepo, emailService, authService, alertService,
		services.PasswordResetOptions{
			TokenTTL:    cfg.PasswordReset.TokenTTL(),
			RateWindow:  cfg.PasswordReset.RateWindow(),
			MaxAttempts: cfg.PasswordReset.MaxAttemptsPerHour,
		},
	)
	catalogService := services.NewCatalogService(catalogRepo)
	orderService := services.NewOrderService(orderRepo, catalogRepo, emailService)
	reportService := services.NewReportService(orderRepo)

	// === Background cleanup ===
	sched := scheduler.New()
	sched.Daily("token-sweep", cfg.PasswordReset.TokenSweepHour, resetService.CleanupExpiredTokens)
	sched.Every("attempt-sweep", time.Hour, resetService.CleanupExpiredAttempts)
	defer sched.Stop()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, userService)
	reportHandler := handlers.NewReportHandler(reportService, pdf.NewReportGenerator("Printstore"))

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		resetHandler,
		catalogHandler,
		orderHandler,
		reportHandler,
	)

	// === Run ===
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down, stopping background jobs")
		sched.Stop()
		os.Exit(0)
	}()

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
