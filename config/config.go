package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"spotbook/constants"
	"spotbook/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary returns nil when no credentials are configured.
func ConnectCloudinary() (*cloudinary.Cloudinary, error) {
	cloud, key, secret := GetEnv("CLOUDINARY_CLOUD_NAME"), GetEnv("CLOUDINARY_API_KEY"), GetEnv("CLOUDINARY_API_SECRET")
	if cloud == "" || key == "" || secret == "" {
		return nil, nil
	}
	return cloudinary.NewFromParams(cloud, key, secret)
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// Settings are the values read once at startup.
type Settings struct {
	Env            string
	Port           string
	StoreDriver    string
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string
	LogLevel       logger.Level
	SecureCookie   bool
}

func LoadSettings() Settings {
	env := GetEnvDefault("ENV", "dev")
	return Settings{
		Env:            env,
		Port:           GetEnvDefault("PORT", "8083"),
		StoreDriver:    GetEnvDefault("STORE_DRIVER", "postgres"),
		JWTSecret:      GetEnv("JWT_SECRET"),
		TokenTTL:       time.Duration(GetEnvInt("JWT_EXPIRES_MINUTES", constants.DefaultTokenMinute)) * time.Minute,
		GoogleClientID: GetEnv("GOOGLE_CLIENT_ID"),
		LogLevel:       logger.ParseLevel(GetEnv("LOG_LEVEL")),
		SecureCookie:   env == "prod",
	}
}
