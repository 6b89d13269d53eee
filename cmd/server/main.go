package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"neonix-orders/internal/address"
	"neonix-orders/internal/config"
	"neonix-orders/internal/db"
	"neonix-orders/internal/handler"
	"neonix-orders/internal/logger"
	"neonix-orders/internal/metrics"
	"neonix-orders/internal/middleware"
	"neonix-orders/internal/order"
	"neonix-orders/internal/payment"
	"neonix-orders/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	addressRepo := address.NewRepository(database)
	paymentRepo := payment.NewRepository(database)
	orderRepo := order.NewRepository(database)

	orderSvc := order.NewService(orderRepo, userRepo, addressRepo, paymentRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(orderSvc, database)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.L().Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("server shutdown failed", zap.Error(err))
	}
}

func setupRouter(orderSvc order.Service, database *sql.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.RateLimit())

	handler.NewOrderHandler(orderSvc).Register(router)

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status": "healthy",
			"http":   metrics.Default.Snapshot(),
		}

		if err := database.PingContext(c.Request.Context()); err != nil {
			status["status"] = "unhealthy"
			status["db"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}

		c.JSON(http.StatusOK, status)
	})

	return router
}
