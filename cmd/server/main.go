package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/config"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/domain/fiber/handler"
	applogger "github.com/fadilmartias/pitchdeck-analyzer/internal/logger"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/middleware"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/repository"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	appConfig := config.LoadAppConfig()
	log, err := applogger.New(appConfig.IsProduction(), !appConfig.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Debug("could not load .env file", zap.Error(envErr))
	}

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(appConfig.MaxUploadSize) + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db, err := ConnectDB()
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}

	evaluationRepo := repository.NewEvaluationRepository(db)
	results := repository.NewResultFileRepository(appConfig.OutputDir)
	uc := usecase.NewEvaluationUsecase(
		evaluationRepo,
		results,
		usecase.DefaultPipelineFactory(log),
		appConfig.MaxConcurrent,
		log,
	)
	handler.NewEvaluateHandler(uc, appConfig).RegisterRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("active goroutines", zap.Int("count", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Info("shutting down, waiting for running evaluations")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	uc.Wait()
	log.Info("server stopped")
}

// ConnectDB opens the task database selected by DB_DRIVER and migrates it.
func ConnectDB() (*gorm.DB, error) {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	var dialector gorm.Dialector
	switch dbConfig.Driver {
	case "sqlite":
		dialector = sqlite.Open(dbConfig.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			dbConfig.Host,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.Name,
			dbConfig.Port,
			dbConfig.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", dbConfig.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	switch {
	case dbConfig.Driver == "sqlite":
		sqlDB.SetMaxOpenConns(1)
	case !appConfig.IsProduction():
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	default:
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetMaxOpenConns(200)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.EvaluationTask{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
