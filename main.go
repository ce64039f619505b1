package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tidywave/config"
	"tidywave/cron"
	"tidywave/database"
	adminRepoPkg "tidywave/database/repository/admin"
	cleanerRepoPkg "tidywave/database/repository/cleaner"
	clientRepoPkg "tidywave/database/repository/client"
	orderRepoPkg "tidywave/database/repository/order"
	serviceRepoPkg "tidywave/database/repository/service"
	"tidywave/handlers"
	"tidywave/middleware"
	"tidywave/routes"
	"tidywave/services/account"
	"tidywave/services/catalog"
	"tidywave/services/mailer"
	"tidywave/services/order"
	"tidywave/services/pricing"
	"tidywave/services/scheduling"
	"tidywave/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()
	cleanerRepo := cleanerRepoPkg.NewMongoCleanerRepo()

	// background mail queue.
	mailSender := mailer.New()
	enqueuer := &mailer.Enqueuer{Client: cron.NewQueueClient()}
	cron.InitMailWorker(mailSender)
	cron.InitReminderScheduler(orderRepo, clientRepo, enqueuer)

	// services.
	pricer := &pricing.Pricer{Services: serviceRepo}
	checker := scheduling.NewChecker(scheduling.Hours{
		Start:       config.AppConfig.WorkingHoursStart,
		End:         config.AppConfig.WorkingHoursEnd,
		SlotMinutes: config.AppConfig.SlotDurationMinutes,
	})
	accountService := &account.Service{
		Clients: clientRepo,
		Admins:  adminRepo,
		Mail:    enqueuer,
	}
	catalogService := &catalog.Service{Services: serviceRepo}
	orderService := &order.Service{
		Orders:   orderRepo,
		Cleaners: cleanerRepo,
		Pricer:   pricer,
		Checker:  checker,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(accountService),
		Admin:   handlers.NewAdminHandler(accountService, cleanerRepo),
		Catalog: handlers.NewCatalogHandler(catalogService, pricer),
		Orders:  handlers.NewOrderHandler(orderService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
