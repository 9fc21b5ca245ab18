package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Reservation lock tuning.
	LockTTLMinutes  int `mapstructure:"LOCK_TTL_MINUTES"`
	SlotStepMinutes int `mapstructure:"SLOT_STEP_MINUTES"`

	// Routing provider (travel time estimation).
	RoutingAPIKey        string  `mapstructure:"ROUTING_API_KEY"`
	RoutingBaseURL       string  `mapstructure:"ROUTING_BASE_URL"`
	RoutingTimeoutSecs   int     `mapstructure:"ROUTING_TIMEOUT_SECS"`
	FallbackTravelMins   int     `mapstructure:"FALLBACK_TRAVEL_MINS"`
	FallbackTravelDistKm float64 `mapstructure:"FALLBACK_TRAVEL_DIST_KM"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "bookwell")
	viper.SetDefault("LOCK_TTL_MINUTES", 10)
	viper.SetDefault("SLOT_STEP_MINUTES", 15)
	viper.SetDefault("ROUTING_API_KEY", "")
	viper.SetDefault("ROUTING_BASE_URL", "https://maps.googleapis.com/maps/api/distancematrix/json")
	viper.SetDefault("ROUTING_TIMEOUT_SECS", 5)
	viper.SetDefault("FALLBACK_TRAVEL_MINS", 30)
	viper.SetDefault("FALLBACK_TRAVEL_DIST_KM", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
