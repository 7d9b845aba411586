package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"goldenview/realty/internal/api/handlers"
	"goldenview/realty/internal/api/middleware"
	"goldenview/realty/internal/cache"
	"goldenview/realty/internal/captcha"
	"goldenview/realty/internal/config"
	"goldenview/realty/internal/email"
	"goldenview/realty/internal/services"
	"goldenview/realty/internal/storage"
)

// Dependencies are the collaborators the API handlers are built from.
// Storage and TaskClient may be nil. A nil Captcha is built from the config.
type Dependencies struct {
	Properties   services.IPropertyService
	Users        services.IUserService
	Appointments services.IAppointmentService
	Locations    services.ILocationService
	Storage      storage.IS3Storage
	TaskClient   handlers.IAsynqClient
	Captcha      captcha.ITurnstileVerifier
}

// SetupRouter configures and returns the main Gin engine. ctx bounds the
// rate limiter's background cleanup.
func SetupRouter(ctx context.Context, cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.Default()

	rateLimiter := middleware.NewRateLimiterMiddleware(ctx, cfg)
	verifier := deps.Captcha
	if verifier == nil {
		verifier = captcha.NewTurnstileVerifier(cfg)
	}
	humanOnly := []gin.HandlerFunc{middleware.CaptchaMiddleware(verifier, cfg.CaptchaTokenTTL), middleware.RequireHuman()}

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(rateLimiter.Limit())

	propertyHandler := handlers.NewPropertyHandler(deps.Properties, deps.Storage, deps.TaskClient)
	catalogHandler := handlers.NewCatalogHandler(deps.Locations)
	configHandler := handlers.NewConfigHandler(cfg)
	userHandler := handlers.NewUserHandler(deps.Users, cfg.JwtSecret, cfg.JwtTTL)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments, deps.TaskClient)

	v1 := r.Group("/v1")
	{
		// Public Routes
		v1.GET("/config", configHandler.GetPublicConfig)
		v1.GET("/properties", propertyHandler.ListProperties)
		v1.GET("/properties/search", propertyHandler.SearchLegacy)
		v1.GET("/properties/:id", propertyHandler.GetProperty)
		v1.GET("/properties/:id/similar", propertyHandler.SimilarProperties)
		v1.GET("/locations", catalogHandler.ListLocations)
		v1.POST("/filters/summary", catalogHandler.FilterSummary)
		v1.POST("/appointments", append(humanOnly, appointmentHandler.CreateAppointment)...)
		v1.POST("/auth/login", append(humanOnly, userHandler.Login)...)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated Routes
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/properties", propertyHandler.CreateProperty)
			authRequired.PUT("/properties/:id", propertyHandler.UpdateProperty)
			authRequired.POST("/properties/:id/deletion-request", propertyHandler.RequestDeletion)
			authRequired.POST("/properties/:id/images", propertyHandler.RequestImageUpload)
			authRequired.POST("/properties/:id/images/complete", propertyHandler.CompleteImageUpload)
		}

		// Admin Routes
		adminRequired := v1.Group("/admin")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.GET("/properties", propertyHandler.AdminListProperties)
			adminRequired.POST("/properties/import", propertyHandler.ImportProperties)
			adminRequired.PATCH("/properties/:id/featured", propertyHandler.SetFeatured)
			adminRequired.PATCH("/properties/:id/status", propertyHandler.UpdateStatus)
			adminRequired.PATCH("/properties/:id/deletion-request", propertyHandler.ReviewDeletion)
			adminRequired.DELETE("/properties/:id", propertyHandler.DeleteProperty)
			adminRequired.GET("/deletion-requests", propertyHandler.ListDeletionRequests)

			adminRequired.GET("/users", userHandler.ListUsers)
			adminRequired.POST("/users", userHandler.CreateUser)
			adminRequired.DELETE("/users/:id", userHandler.DeleteUser)

			adminRequired.GET("/appointments", appointmentHandler.ListAppointments)
			adminRequired.PATCH("/appointments/:id", appointmentHandler.UpdateAppointment)
			adminRequired.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)
		}
	}

	return r
}

// SetupServiceRouter configures and returns the service Gin engine. It is
// meant for a port reachable only from the operator's network. rdb backs
// getTestEmail and may be nil.
func SetupServiceRouter(catalogCache cache.ICatalogCache, rdb *redis.Client, shutdownChan chan<- struct{}) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.POST("/api", func(c *gin.Context) {
		var req struct {
			Method    string          `json:"method"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
			return
		}

		switch req.Method {
		case "shutdown":
			log.Println("Received shutdown command via Service API")
			c.JSON(http.StatusOK, gin.H{"success": true, "result": "Shutdown initiated"})
			select {
			case shutdownChan <- struct{}{}:
				log.Println("Shutdown signal sent successfully.")
			default:
				log.Println("Shutdown channel already signaled or blocked.")
			}
		case "flushCatalogCache":
			if err := catalogCache.Invalidate(c.Request.Context()); err != nil {
				log.Printf("Service API: Error flushing catalog cache: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Redis error"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "result": "Catalog cache flushed"})
		case "getTestEmail":
			var args []string // [kind, address]
			if err := json.Unmarshal(req.Arguments, &args); err != nil || len(args) != 2 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid arguments: expected JSON array [kind, email]"})
				return
			}
			if rdb == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Mock email store not configured"})
				return
			}
			stored, err := waitForTestEmail(c.Request.Context(), rdb, email.MockEmailKey(args[1], args[0]))
			if err != nil {
				if errors.Is(err, redis.Nil) {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Test email not found"})
					return
				}
				log.Printf("Service API: Error reading test email: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Redis error"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "result": stored})
		default:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": fmt.Sprintf("Unknown service method: %s", req.Method)})
		}
	})
	return r
}

// waitForTestEmail polls for a stored mock email for up to two seconds and
// removes it once read.
func waitForTestEmail(ctx context.Context, rdb *redis.Client, key string) (*email.StoredEmail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var data string
	var err error
	for i := 0; i < 10; i++ {
		data, err = rdb.GetDel(ctx, key).Result()
		if err == nil {
			break
		}
		if !errors.Is(err, redis.Nil) {
			return nil, err
		}
		time.Sleep(200 * time.Millisecond)
	}
	if err != nil {
		return nil, err
	}

	var stored email.StoredEmail
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("decode stored email %s: %w", key, err)
	}
	return &stored, nil
}
