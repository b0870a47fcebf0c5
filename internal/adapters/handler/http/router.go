package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/avelkov/focusboard/internal/adapters/handler/http/middleware"
	"github.com/avelkov/focusboard/internal/core/services"
)

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	OAuthHandler   *OAuthHandler
	TodoHandler    *TodoHandler
	GoalHandler    *GoalHandler
	HabitHandler   *HabitHandler
	SessionHandler *SessionHandler
	GroupHandler   *GroupHandler
	TokenService   *services.TokenService
	DB             *sqlx.DB
	Redis          *redis.Client
	StartTime      time.Time

	// MetricsUser/MetricsPassword guard /metrics with basic auth when
	// both are set. Left empty the endpoint is open, which is fine for
	// deployments where the scraper sits on the same network.
	MetricsUser     string
	MetricsPassword string
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.Use(middleware.MetricsMiddleware())

	if deps.Redis != nil {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, 100, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "connected"
		if deps.DB == nil || deps.DB.Ping() != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "connected"
		if deps.Redis == nil || deps.Redis.Ping(c.Request.Context()).Err() != nil {
			redisStatus = "unreachable"
		}

		statusCode := 200
		if dbStatus == "unreachable" {
			statusCode = 503
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	if deps.MetricsUser != "" && deps.MetricsPassword != "" {
		metrics := router.Group("/metrics", gin.BasicAuth(gin.Accounts{deps.MetricsUser: deps.MetricsPassword}))
		metrics.GET("", gin.WrapH(promhttp.Handler()))
	} else {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)
	if deps.OAuthHandler != nil {
		deps.OAuthHandler.RegisterRoutes(apiV1)
	}

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.AuthHandler.RegisterProtectedRoutes(protected)
		deps.TodoHandler.RegisterRoutes(protected)
		deps.GoalHandler.RegisterRoutes(protected)
		deps.HabitHandler.RegisterRoutes(protected)
		deps.SessionHandler.RegisterRoutes(protected)
		deps.GroupHandler.RegisterRoutes(protected)
	}

	return router
}
