// File: slotswapper/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotswapper/config"
	"slotswapper/cron"
	"slotswapper/database"
	slotRepoPkg "slotswapper/database/repository/slot"
	swapRepoPkg "slotswapper/database/repository/swap"
	userRepoPkg "slotswapper/database/repository/user"
	"slotswapper/handlers"
	"slotswapper/middleware"
	"slotswapper/routes"
	slotService "slotswapper/services/slot"
	swapService "slotswapper/services/swap"
	userService "slotswapper/services/user"
	"slotswapper/utils"

	"github.com/gin-gonic/gin"
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
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	swapRepo := swapRepoPkg.NewMongoSwapRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userSvc := &userService.DefaultUserService{
		Repo: userRepo,
	}
	slotSvc := &slotService.DefaultSlotService{
		Repo: slotRepo,
	}
	swapSvc := &swapService.DefaultSwapService{
		SlotRepo: slotRepo,
		SwapRepo: swapRepo,
		UserRepo: userRepo,
		Tx:       database.NewTxRunner(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Auth:     handlers.NewAuthHandler(userSvc),
		Slot:     handlers.NewSlotHandler(slotSvc),
		Swap:     handlers.NewSwapHandler(swapSvc),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep for abandoned pending swaps.
	cron.InitReclaimWorker(swapSvc)

	// Periodic external-service health snapshots for /health.
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

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
