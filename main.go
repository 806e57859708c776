package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/config"
	"github.com/TheManUnderTheHood/Loomly/events"
	"github.com/TheManUnderTheHood/Loomly/logger"
	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg := config.GetConfig()
	log := logger.New()
	log.Info().Msg("✅ Starting Loomly API...")

	// Init DB
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.TrackingEvent{},
		&models.Review{},
	); err != nil {
		log.Fatal().Err(err).Msg("❌ AutoMigrate failed")
	}

	// Kafka order events (disabled when no brokers configured)
	pub := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, log)
	defer pub.Close()

	// Gin setup
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorHandler(log))
	r.Use(middleware.SecurityHeaders)

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CorsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// API rate limiting, counters in Redis
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter := middleware.NewRateLimiter(rdb, cfg.RateLimitMax,
			time.Duration(cfg.RateLimitWindowSec)*time.Second)
		r.Use(limiter.Handle)
	}

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadDir)

	// Setup routes
	routes.SetupRoutes(r, db, pub)

	log.Info().Str("port", cfg.Port).Msg("🚀 Server running")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("❌ Server failed")
	}
}
