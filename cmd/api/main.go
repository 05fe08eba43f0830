package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorshift/marketplace-api/internal/config"
	"github.com/doctorshift/marketplace-api/internal/handlers"
	"github.com/doctorshift/marketplace-api/internal/middleware"
	"github.com/doctorshift/marketplace-api/internal/services"
)

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.App.Env)
	if os.Getenv("JWT_SECRET") == "" {
		logger.Warn("JWT_SECRET is not set, token endpoints will fail")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.Database)
	logger.Info("connected to MongoDB", "database", cfg.Mongo.Database)

	// --- Services ---
	uploadSvc, err := services.NewUploadService(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to prepare uploads dir: %v", err)
	}
	notificationSvc := services.NewNotificationService()

	h := handlers.NewHandler(db, uploadSvc, notificationSvc)

	// --- Gin Router ---
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics())

	// License images uploaded during registration.
	r.Static("/uploads", cfg.Uploads.Dir)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// --- Routes ---
	api := r.Group("/api")
	{
		api.POST("/register", h.RegisterUser)
		api.POST("/login", h.Login)
		api.POST("/create-admin", h.CreateAdmin)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/me", h.GetCurrentUser)

			authed.GET("/shifts", h.GetShifts)
			authed.POST("/shifts", h.CreateShift)
			authed.GET("/my-shifts", h.GetMyShifts)
			authed.DELETE("/shifts/:id", h.DeleteShift)

			authed.GET("/admin/pending-users", h.GetPendingUsers)
			authed.POST("/admin/approve-user/:id", h.ApproveUser)
			authed.POST("/admin/reject-user/:id", h.RejectUser)
			authed.GET("/admin/export", h.ExportReport)
		}
	}

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: r}

	go func() {
		logger.Info("HTTP server started", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("graceful shutdown complete")
}
