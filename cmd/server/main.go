package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/careers-portal/internal/config"
	"github.com/fadilmartias/careers-portal/internal/domain/fiber/handler"
	"github.com/fadilmartias/careers-portal/internal/middleware"
	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/repository"
	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/fadilmartias/careers-portal/internal/store"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// snapshotTTL bounds how long an abandoned draft snapshot stays in Redis.
const snapshotTTL = 30 * 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	draftConfig := config.LoadDraftConfig()
	storageConfig := config.LoadStorageConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(draftConfig.UploadMaxBytes) + 1<<20,
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

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  appConfig.AllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + handler.DraftIDHeader,
		ExposeHeaders: handler.DraftIDHeader,
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

	var (
		drafts  store.KV = store.NewMemoryKV()
		limiter fiber.Storage
	)
	if draftConfig.Store == config.DraftStoreRedis {
		client := ConnectRedis()
		drafts = store.NewStorageKV(store.NewRedisStorage(client, "kk-careers-drafts"), snapshotTTL)
		limiter = store.NewRedisStorage(client, "kk-careers-limiter")
		defer client.Close()
	}
	app.Use(middleware.RateLimiter("api", 300, 1*time.Minute, limiter))

	db := ConnectDB()
	applications := repository.NewApplicationRepository(db)

	var storage service.StorageServiceInterface
	switch storageConfig.Driver {
	case config.StorageDriverSupabase:
		storage = service.NewSupabaseStorage(config.LoadSupabaseConfig())
	default:
		storage = service.NewLocalStorage(storageConfig.LocalDir, appConfig.BaseURL)
		app.Static("/files", storageConfig.LocalDir)
	}
	auth := service.NewSupabaseAuth(config.LoadSupabaseConfig())

	submission := usecase.NewSubmissionUsecase(storage, applications, storageConfig.Bucket)
	sessions := usecase.NewSessions(drafts, submission, draftConfig.SessionTTL)
	review := usecase.NewReviewUsecase(applications, storage, storageConfig.Bucket)

	api := app.Group("/api", middleware.OptionalUser(auth))
	handler.NewWizardHandler(sessions, draftConfig.UploadMaxBytes, limiter).RegisterRoutes(api)
	handler.NewAdminHandler(review).RegisterRoutes(api)
	handler.NewAuthHandler(auth).RegisterRoutes(api)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx, 10*time.Minute)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Infof("Active goroutines: %d, live drafts: %d", runtime.NumGoroutine(), sessions.Len())
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("Server running on %s", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectRedis() *redis.Client {
	redisConfig := config.LoadRedisConfig()
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}
	return client
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Application{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
