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
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nunukkam/admin-portal-api/api/swagger"
	"github.com/nunukkam/admin-portal-api/internal/handler"
	"github.com/nunukkam/admin-portal-api/internal/middleware"
	"github.com/nunukkam/admin-portal-api/internal/navigation"
	"github.com/nunukkam/admin-portal-api/internal/repository"
	"github.com/nunukkam/admin-portal-api/internal/service"
	"github.com/nunukkam/admin-portal-api/internal/store"
	"github.com/nunukkam/admin-portal-api/pkg/cache"
	"github.com/nunukkam/admin-portal-api/pkg/config"
	"github.com/nunukkam/admin-portal-api/pkg/database"
	"github.com/nunukkam/admin-portal-api/pkg/logger"
	corsmiddleware "github.com/nunukkam/admin-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nunukkam/admin-portal-api/pkg/middleware/requestid"
	"github.com/nunukkam/admin-portal-api/pkg/storage"
)

// @title Nunukkam Admin Portal API
// @version 1.0.0
// @description Backend for the Nunukkam training administration portal
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis connection failed", "error", err)
	}
	defer redisClient.Close()

	reportStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("report storage init failed", "error", err)
	}
	certStore, err := storage.NewLocalStorage(cfg.Certificates.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("certificate storage init failed", "error", err)
	}

	reportSigner := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	certSigner := storage.NewSignedURLSigner(cfg.Certificates.SignedURLSecret, cfg.Certificates.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	designationRepo := repository.NewDesignationRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	auditSvc := service.NewAuditService(auditRepo, logr)
	authSvc := service.NewAuthService(userRepo, roleRepo, auditRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
		SingleSession:      cfg.JWT.SingleSession,
	})
	userSvc := service.NewUserService(userRepo, auditRepo, validate, logr)
	roleSvc := service.NewRoleService(roleRepo, userRepo, auditRepo, validate, logr)
	designationSvc := service.NewDesignationService(designationRepo, userRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, skillRepo, validate, logr)
	chapterSvc := service.NewChapterService(chapterRepo, validate, logr)
	collegeSvc := service.NewCollegeService(collegeRepo, validate, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, validate, logr)
	reportSvc := service.NewReportService(reportRepo, collegeRepo, courseRepo, userRepo, reportStore, reportSigner, validate, logr, service.ReportConfig{
		WorkerConcurrency: cfg.Reports.WorkerConcurrency,
		WorkerRetries:     cfg.Reports.WorkerRetries,
	})
	certificateSvc := service.NewCertificateService(certificateRepo, collegeRepo, courseRepo, auditRepo, certStore, certSigner, cfg.Certificates.IssuerName, validate, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr)

	reportSvc.Start(ctx)
	defer reportSvc.Stop()

	demoStore := store.New()
	if cfg.DemoStore.Seed {
		store.Seed(demoStore)
	}
	resolver := navigation.NewResolver(demoStore, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(userSvc),
		Roles:         handler.NewRoleHandler(roleSvc),
		Designations:  handler.NewDesignationHandler(designationSvc),
		Courses:       handler.NewCourseHandler(courseSvc),
		Chapters:      handler.NewChapterHandler(chapterSvc),
		Colleges:      handler.NewCollegeHandler(collegeSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Reports:       handler.NewReportHandler(reportSvc),
		Certificates:  handler.NewCertificateHandler(certificateSvc),
		Audit:         handler.NewAuditHandler(auditSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc, metricsSvc),
		Navigation:    handler.NewNavigationHandler(resolver),
		Metrics:       handler.NewMetricsHandler(metricsSvc),
	}, authSvc, auditRepo)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
