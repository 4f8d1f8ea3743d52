package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	CatalogAPIURL string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SessionTTL    time.Duration
	CheckoutDelay time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	sessionMinutes, _ := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if sessionMinutes == 0 {
		sessionMinutes = 30
	}

	checkoutDelayMs, _ := strconv.Atoi(os.Getenv("CHECKOUT_DELAY_MS"))
	if checkoutDelayMs == 0 {
		checkoutDelayMs = 2000
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		CatalogAPIURL: getEnv("CATALOG_API_URL", "http://localhost:1337/api"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "shoe_shop"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SessionTTL:    time.Duration(sessionMinutes) * time.Minute,
		CheckoutDelay: time.Duration(checkoutDelayMs) * time.Millisecond,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
