package config

import (
	"log"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string `mapstructure:"PORT"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	CorsOrigin         string `mapstructure:"CORS_ORIGIN"`
	AccessTokenSecret  string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string `mapstructure:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     string `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	RefreshTokenTTL    string `mapstructure:"REFRESH_TOKEN_EXPIRY"`
	UploadDir          string `mapstructure:"UPLOAD_DIR"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	KafkaBrokers       string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic    string `mapstructure:"KAFKA_ORDER_TOPIC"`
	RateLimitMax       int    `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindowSec int    `mapstructure:"RATE_LIMIT_WINDOW_SEC"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig loads configuration once from the environment (godotenv has
// already populated it from .env in main).
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()
		v.AutomaticEnv()

		v.SetDefault("PORT", "8080")
		v.SetDefault("CORS_ORIGIN", "*")
		v.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
		v.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")
		v.SetDefault("UPLOAD_DIR", "./public/uploads")
		v.SetDefault("KAFKA_ORDER_TOPIC", "orders")
		v.SetDefault("RATE_LIMIT_MAX", 100)
		v.SetDefault("RATE_LIMIT_WINDOW_SEC", 900)

		// viper.AutomaticEnv does not populate Unmarshal on its own, so bind
		// every key explicitly.
		for _, key := range []string{
			"PORT", "DATABASE_URL", "CORS_ORIGIN",
			"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET",
			"ACCESS_TOKEN_EXPIRY", "REFRESH_TOKEN_EXPIRY",
			"UPLOAD_DIR", "REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_ORDER_TOPIC",
			"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SEC",
		} {
			if err := v.BindEnv(key); err != nil {
				log.Fatalf("failed to bind env %s: %v", key, err)
			}
		}

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	})
	return cfg
}
