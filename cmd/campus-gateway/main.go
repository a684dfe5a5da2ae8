package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-attendance-gateway/api/swagger"
	"github.com/noah-isme/campus-attendance-gateway/internal/handler"
	"github.com/noah-isme/campus-attendance-gateway/internal/middleware"
	"github.com/noah-isme/campus-attendance-gateway/internal/repository"
	"github.com/noah-isme/campus-attendance-gateway/internal/service"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	"github.com/noah-isme/campus-attendance-gateway/pkg/cache"
	"github.com/noah-isme/campus-attendance-gateway/pkg/config"
	"github.com/noah-isme/campus-attendance-gateway/pkg/database"
	"github.com/noah-isme/campus-attendance-gateway/pkg/jobs"
	"github.com/noah-isme/campus-attendance-gateway/pkg/logger"
	"github.com/noah-isme/campus-attendance-gateway/pkg/media"
	corsmiddleware "github.com/noah-isme/campus-attendance-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-attendance-gateway/pkg/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

// @title Campus Attendance Gateway
// @version 0.1.0
// @description Backend-for-frontend for the campus attendance mobile client
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Sugar().Fatalw("gateway stopped", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect session store: %w", err)
	}
	defer redisClient.Close()
	sessions := repository.NewSessionRepository(redisClient, cfg.Session.KeyPrefix)

	dependencies := map[string]handler.Pinger{"redis": sessions}

	var auditSvc *service.AuditService
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect audit database: %w", err)
		}
		defer db.Close()
		auditRepo := repository.NewAuditRepository(db)
		dependencies["postgres"] = auditRepo
		auditSvc = service.NewAuditService(auditRepo, logr, jobs.QueueConfig{Workers: 2, BufferSize: 256, MaxRetries: 3, RetryDelay: time.Second})
		auditSvc.Start(context.Background())
		defer auditSvc.Stop()
	}

	metricsSvc := service.NewMetricsService()
	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, upstream.WithObserver(metricsSvc))
	validate := service.NewValidator()

	authSvc := service.NewAuthService(client, sessions, auditSvc, validate, logr, service.AuthConfig{
		Secret:     cfg.Session.JWTSecret,
		SessionTTL: cfg.Session.Expiration,
	})
	photos := media.PhotoOptions{
		MaxWidth:    cfg.Photos.MaxWidth,
		JPEGQuality: cfg.Photos.JPEGQuality,
		MaxBytes:    cfg.Photos.MaxBytes,
	}

	routes := &handler.Router{
		Auth:          handler.NewAuthHandler(authSvc),
		Schedules:     handler.NewScheduleHandler(service.NewScheduleService(client, validate, logr)),
		Instructors:   handler.NewInstructorHandler(service.NewInstructorService(client, validate, logr)),
		Users:         handler.NewUserHandler(service.NewUserService(client, validate, logr, photos)),
		Attendance:    handler.NewAttendanceHandler(service.NewAttendanceService(client, service.NewExportService(cfg.Export.Title), logr)),
		Rooms:         handler.NewRoomHandler(service.NewRoomService(client, validate, logr)),
		Feedback:      handler.NewFeedbackHandler(service.NewFeedbackService(client, validate, logr)),
		AuditLogs:     handler.NewAuditLogHandler(auditSvc),
		Health:        handler.NewHealthHandler(metricsSvc.Handler(), dependencies),
		Authenticator: authSvc,
		Audit:         auditSvc,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	routes.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
