// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/555cider/admin-server/config"
	"github.com/555cider/admin-server/db"
	"github.com/555cider/admin-server/handler"
	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/repository"
	"github.com/555cider/admin-server/router"
	"github.com/555cider/admin-server/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---

	authRepo := repository.NewAuthRepository(database)
	userRepo := repository.NewUserRepository(database)
	userTypeRepo := repository.NewUserTypeRepository(database)
	historyRepo := repository.NewHistoryRepository(database)

	historyService := service.NewHistoryService(historyRepo)
	tokenCodec := service.NewTokenCodec(
		config.AppConfig.Token.Secret,
		config.AppConfig.Token.AccessExp,
		config.AppConfig.Token.RefreshExp,
	)
	passwordHasher := service.NewPasswordHasher(0)
	authService := service.NewAuthService(
		authRepo, userRepo, userTypeRepo,
		historyService, tokenCodec, passwordHasher, redisClient,
	)

	authHandler := handler.NewAuthHandler(authService)
	historyHandler := handler.NewHistoryHandler(historyService)
	authMiddleware := handler.NewAuthMiddleware(tokenCodec, config.AppConfig.Cookie.AccessTokenName)

	r := router.NewRouter(authHandler, historyHandler, authMiddleware)

	// --- Start the Server with Graceful Shutdown ---
	addr := config.AppConfig.Server.Host + ":" + config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
