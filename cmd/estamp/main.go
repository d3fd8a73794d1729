package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"go.uber.org/zap"

	"github.com/piresc/estamp/internal/pkg/config"
	"github.com/piresc/estamp/internal/pkg/database"
	"github.com/piresc/estamp/internal/pkg/document"
	"github.com/piresc/estamp/internal/pkg/health"
	"github.com/piresc/estamp/internal/pkg/jwt"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/mailer"
	"github.com/piresc/estamp/internal/pkg/middleware"
	nrpkg "github.com/piresc/estamp/internal/pkg/newrelic"
	"github.com/piresc/estamp/internal/pkg/password"
	"github.com/piresc/estamp/internal/pkg/server"
	"github.com/piresc/estamp/internal/pkg/storage"
	"github.com/piresc/estamp/internal/utils"
	authHandler "github.com/piresc/estamp/services/auth/handler"
	authRepo "github.com/piresc/estamp/services/auth/repository"
	authUsecase "github.com/piresc/estamp/services/auth/usecase"
	borGateway "github.com/piresc/estamp/services/bor/gateway"
	borHandler "github.com/piresc/estamp/services/bor/handler"
	borUsecase "github.com/piresc/estamp/services/bor/usecase"
	formHandler "github.com/piresc/estamp/services/forms/handler"
	formRepo "github.com/piresc/estamp/services/forms/repository"
	formUsecase "github.com/piresc/estamp/services/forms/usecase"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = ".env"
	}
	configs := config.InitConfig(configPath)
	appName := configs.App.Name

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	if configs.JWT.Secret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	if err := postgresClient.RunMigrations(context.Background()); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	store, err := storage.New(context.Background(), configs.Storage)
	if err != nil {
		zapLogger.Fatal("Failed to initialize artifact storage", zap.Error(err))
	}

	mail, err := mailer.New(configs.Mail)
	if err != nil {
		zapLogger.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	tokens := jwt.NewManager(configs.JWT)

	// Auth
	userRepository := authRepo.NewUserRepo(postgresClient.GetDB())
	otpRepository := authRepo.NewOTPRepo(redisClient, configs.OTP.Retention)
	authUC := authUsecase.NewAuthUC(userRepository, otpRepository,
		password.NewBcryptHasher(0), tokens, mail, configs.OTP)

	// Forms and reports
	formRepository := formRepo.NewFormRepo(postgresClient.GetDB())
	formUC := formUsecase.NewFormUC(formRepository, document.NewRenderer(), store, configs.Report)

	// BOR
	borTokens := borGateway.NewTokenSource(configs.BOR)
	borUC := borUsecase.NewBORUC(borGateway.NewClient(configs.BOR, borTokens))

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()

	e.Use(middleware.RequestIDMiddleware())
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: configs.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:       86400,
	}))
	e.Use(echomw.Secure())

	if configs.Storage.Driver != "s3" {
		e.Static(configs.Storage.PublicPrefix, configs.Storage.LocalDir)
	}

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, map[string]health.Checker{
		"postgres": postgresClient,
		"redis":    redisClient,
	})

	sessionAuth := middleware.SessionAuth(tokens)
	otpLimiter := middleware.IPRateLimiter(configs.OTP.RateLimit, configs.OTP.RatePeriod, redisClient.GetClient())

	authHandler.NewHandler(authUC).RegisterRoutes(e, sessionAuth, otpLimiter)
	formHandler.NewHandler(formUC).RegisterRoutes(e, sessionAuth)
	borHandler.NewHandler(borUC).RegisterRoutes(e, sessionAuth)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	srv.OnShutdown(func(ctx context.Context) error {
		return postgresClient.Close()
	})
	srv.OnShutdown(func(ctx context.Context) error {
		return redisClient.Close()
	})
	if nrApp != nil {
		srv.OnShutdown(func(ctx context.Context) error {
			nrApp.Shutdown(5 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}
