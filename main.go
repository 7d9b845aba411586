package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"goldenview/realty/internal/api"
	"goldenview/realty/internal/cache"
	"goldenview/realty/internal/captcha"
	"goldenview/realty/internal/config"
	"goldenview/realty/internal/db"
	"goldenview/realty/internal/email"
	"goldenview/realty/internal/services"
	"goldenview/realty/internal/storage"
	"goldenview/realty/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'bg' (background tasks), 'all' (default)")

const workerConcurrency = 10

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx, mongoDb); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndex()

	// Initialize Cache (Redis)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			log.Printf("Error disconnecting from Redis: %v", err)
		}
	}()
	catalogCache := cache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL)

	// Initialize S3 storage. Without a bucket, image uploads are disabled.
	var s3StorageService storage.IS3Storage
	if cfg.AwsS3Bucket != "" {
		s3StorageService, err = storage.NewS3Storage(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set: image uploads are disabled.")
	}

	// Initialize Email Sender
	var primarySender email.Sender
	if cfg.MockServices {
		log.Println("Using Redis mock email sender")
		primarySender = email.NewRedisSender(redisClient, cfg.SmtpFromAddress)
	} else {
		primarySender = email.NewSMTPSender(cfg)
	}
	emailSender := email.NewCompositeEmailSender(primarySender)
	if cfg.LogEmailsPath != "" {
		fileSender, err := email.NewFileEmailSender(cfg.LogEmailsPath, cfg.SmtpFromAddress)
		if err != nil {
			log.Fatalf("Failed to initialize file email sender: %v", err)
		}
		emailSender.AddSender(fileSender)
	}

	// Initialize Services needed by handlers and/or task processor
	propertyService := services.NewPropertyService(mongoDb, cfg, catalogCache)
	userService, err := services.NewUserService(mongoDb, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}
	appointmentService := services.NewAppointmentService(mongoDb)
	locationService := services.NewLocationService(mongoDb, catalogCache)

	// Initialize Task Client
	taskClient := tasks.NewClient(redisClient)
	defer taskClient.Close()

	// WaitGroup for managing goroutines
	var wg sync.WaitGroup

	// Context cancelled on shutdown; stops background loops such as rate limiter cleanup.
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// getTestEmail reads what the mock sender stored; it is only exposed in mock mode.
	var serviceRedis *redis.Client
	if cfg.MockServices {
		serviceRedis = redisClient
	}

	// Channel to signal shutdown from Service API
	shutdownChan := make(chan struct{}, 1) // Buffered channel

	// Start Service API (always runs)
	serviceSrv := &http.Server{
		Addr:    ":" + cfg.ServiceApiPort,
		Handler: api.SetupServiceRouter(catalogCache, serviceRedis, shutdownChan),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Service API listening on :%s", cfg.ServiceApiPort)
		if err := serviceSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Service API ListenAndServe error: %v", err)
		}
		log.Println("Service API server stopped.")
	}()

	// --- Mode-specific servers ---
	var mainApiSrv *http.Server
	var taskSrv *asynq.Server

	log.Printf("Starting application in '%s' mode...", cfg.RunMode)

	apiMode := func() {
		log.Println("Starting main API server...")
		mainApiRouter := api.SetupRouter(appCtx, cfg, api.Dependencies{
			Properties:   propertyService,
			Users:        userService,
			Appointments: appointmentService,
			Locations:    locationService,
			Storage:      s3StorageService,
			TaskClient:   taskClient,
			Captcha:      captcha.NewTurnstileVerifier(cfg),
		})
		mainApiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: mainApiRouter,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("Main API listening on :%s", cfg.ApiPort)
			if err := mainApiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Main API ListenAndServe error: %v", err)
			}
			log.Println("Main API server stopped.")
		}()
	}

	bgMode := func() {
		log.Println("Starting background worker...")
		taskProcessor := tasks.NewTaskProcessor(cfg, s3StorageService, propertyService, emailSender)
		taskSrv = tasks.NewServer(redisClient, workerConcurrency)
		if err := taskSrv.Start(tasks.NewServeMux(taskProcessor)); err != nil {
			log.Fatalf("Background task server error: %v", err)
		}
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "bg":
		bgMode()
	case "all":
		apiMode()
		bgMode()
	default:
		log.Fatalf("Invalid run mode specified in config: %s.", cfg.RunMode)
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)
	case <-shutdownChan:
		fmt.Println("\nShutdown requested via Service API. Shutting down gracefully...")
	}
	cancelApp()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down Service API server...")
	if err := serviceSrv.Shutdown(ctxShutdown); err != nil {
		log.Printf("Service API server shutdown error: %v", err)
	}

	if mainApiSrv != nil {
		log.Println("Shutting down Main API server...")
		if err := mainApiSrv.Shutdown(ctxShutdown); err != nil {
			log.Printf("Main API server shutdown error: %v", err)
		}
	}

	if taskSrv != nil {
		log.Println("Shutting down Background Task server...")
		taskSrv.Shutdown()
	}

	log.Println("Waiting for servers to stop...")
	wg.Wait()

	log.Println("Server gracefully stopped")
}
