package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/avelkov/focusboard/internal/adapters/cache"
	adapterHTTP "github.com/avelkov/focusboard/internal/adapters/handler/http"
	"github.com/avelkov/focusboard/internal/adapters/handler/http/middleware"
	"github.com/avelkov/focusboard/internal/adapters/repository"
	"github.com/avelkov/focusboard/internal/core/domain"
	"github.com/avelkov/focusboard/internal/core/services"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment.")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")

	serverPort := envOr("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	// Redis is optional. Without it the app runs uncached and unlimited.
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		dbIndex, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
		rdb, err := cache.NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), dbIndex)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
		} else {
			redisClient = rdb
			defer rdb.Close()
		}
	}

	userRepo := repository.NewPostgresUserRepository(db)
	todoRepo := repository.NewPostgresTodoRepository(db)
	goalRepo := repository.NewPostgresGoalRepository(db)
	habitRepo := repository.NewPostgresHabitRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	groupRepo := repository.NewPostgresGroupRepository(db)

	var achievementRepo domain.AchievementRepository = repository.NewPostgresAchievementRepository(db)
	if redisClient != nil {
		achievementRepo = repository.NewCachedAchievementRepository(achievementRepo, redisClient)
	}

	tokenService := services.NewTokenService(jwtSecret, "focusboard", 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo)
	todoService := services.NewTodoService(todoRepo)
	goalService := services.NewGoalService(goalRepo)
	habitService := services.NewHabitService(habitRepo)
	achievementService := services.NewAchievementService(sessionRepo, achievementRepo, todoRepo)
	sessionService := services.NewSessionService(sessionRepo, todoRepo, goalRepo, habitRepo, userRepo, groupRepo, achievementService)
	statsService := services.NewStatsService(sessionRepo, achievementRepo, userRepo, groupRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)

	middleware.InitPrometheus()

	var oauthHandler *adapterHTTP.OAuthHandler
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		adapterHTTP.SetupOAuth(adapterHTTP.OAuthConfig{
			GoogleClientID:     clientID,
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			SessionSecret:      os.Getenv("SESSION_SECRET"),
			SecureCookies:      os.Getenv("GO_ENV") == "production",
		})
		oauthHandler = adapterHTTP.NewOAuthHandler(authService, tokenService)
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService, tokenService),
		OAuthHandler:   oauthHandler,
		TodoHandler:    adapterHTTP.NewTodoHandler(todoService),
		GoalHandler:    adapterHTTP.NewGoalHandler(goalService),
		HabitHandler:   adapterHTTP.NewHabitHandler(habitService),
		SessionHandler: adapterHTTP.NewSessionHandler(sessionService, statsService, achievementService),
		GroupHandler:   adapterHTTP.NewGroupHandler(groupService, statsService),
		TokenService:   tokenService,
		DB:             db,
		Redis:          redisClient,
		StartTime:      startTime,

		MetricsUser:     os.Getenv("METRICS_USER"),
		MetricsPassword: os.Getenv("METRICS_PASSWORD"),
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Focusboard API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
