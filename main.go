// File: tutorhive/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorhive/config"
	"tutorhive/cron"
	"tutorhive/database"
	scheduleRepo "tutorhive/database/repository/schedule"
	verificationRepo "tutorhive/database/repository/verification"
	"tutorhive/handlers"
	"tutorhive/middleware"
	"tutorhive/routes"
	"tutorhive/services/notification"
	"tutorhive/services/schedule"
	"tutorhive/services/verification"
	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	verifStore := verificationRepo.NewMongoVerifiableStore()

	// queue client for outbound notifications.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	notificationService := notification.NewDefaultNotificationService(
		queueClient,
		&notification.RedisTokenResolver{Client: utils.GetCacheClient()},
	)

	scheduleService := &schedule.DefaultScheduleService{
		Repo:     schedRepo,
		Locker:   utils.NewRedisLocker(),
		Notifier: notificationService,
	}

	verificationService := &verification.DefaultVerificationService{
		Store:     verifStore,
		Schedules: scheduleService,
		Notifier:  notificationService,
	}

	// Background worker for delivering queued notifications.
	cron.InitNotificationWorker(notificationService)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)

	routes.RegisterRoutes(router, scheduleHandler, verificationHandler)

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
