package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus-server/internal/auth"
	"campus-server/internal/config"
	apphttp "campus-server/internal/http"
	"campus-server/internal/repository/sqlite"
	"campus-server/internal/service"
	"campus-server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	studentRepo := sqlite.NewStudentRepository(db)
	facultyRepo := sqlite.NewFacultyRepository(db)
	adminRepo := sqlite.NewAdminRepository(db)
	noticeRepo := sqlite.NewNoticeRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := studentRepo.Init(ctx); err != nil {
		logger.Fatalf("init student repository: %v", err)
	}
	if err := facultyRepo.Init(ctx); err != nil {
		logger.Fatalf("init faculty repository: %v", err)
	}
	if err := adminRepo.Init(ctx); err != nil {
		logger.Fatalf("init admin repository: %v", err)
	}
	if err := noticeRepo.Init(ctx); err != nil {
		logger.Fatalf("init notice repository: %v", err)
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	authService := service.NewAuthService(userRepo, studentRepo, facultyRepo, adminRepo, tokens)
	studentService := service.NewStudentService(studentRepo, userRepo)
	facultyService := service.NewFacultyService(facultyRepo, userRepo)
	adminService := service.NewAdminService(adminRepo, userRepo)
	noticeService := service.NewNoticeService(noticeRepo)

	// must complete before the admin portal accepts traffic
	created, err := adminService.EnsureDefaultAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		logger.Fatalf("ensure default admin: %v", err)
	}
	if created {
		logger.Infof("default admin created: %s (change password after first login)", cfg.Admin.Email)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		authService,
		studentService,
		facultyService,
		adminService,
		noticeService,
		tokens,
		storageSvc,
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("storage bucket not configured, file routes disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
