package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Redis RedisConfig
	DB    DBConfig
	Feed  FeedConfig
	Auth  AuthConfig
	Port  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// FeedConfig describes the upstream relational shipment feed the sync
// job copies from.
type FeedConfig struct {
	Driver string
	DSN    string
	// Rows with a shipment date older than Cutoff are never copied.
	Cutoff   time.Time
	Interval time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cutoff, err := time.Parse("2006-01-02", getEnv("FEED_CUTOFF_DATE", "2024-01-01"))
	if err != nil {
		log.Fatalf("invalid FEED_CUTOFF_DATE: %v", err)
	}

	interval, err := time.ParseDuration(getEnv("FEED_SYNC_INTERVAL", "30m"))
	if err != nil {
		log.Fatalf("invalid FEED_SYNC_INTERVAL: %v", err)
	}

	return Config{
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "depo"),
		},
		Feed: FeedConfig{
			Driver:   getEnv("FEED_DRIVER", "sqlite3"),
			DSN:      getEnv("FEED_DSN", "shipments.db"),
			Cutoff:   cutoff,
			Interval: interval,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Port: getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
