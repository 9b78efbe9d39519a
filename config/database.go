package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"spotbook/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// getDBConfigByEnv builds the DSN from <ENV>_DB_* variables. DATABASE_URL
// wins when set.
func getDBConfigByEnv(env string) (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	switch env {
	case "dev", "qc", "prod":
	default:
		return "", fmt.Errorf("unknown environment: %q", env)
	}
	prefix := strings.ToUpper(env) + "_DB_"
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		os.Getenv(prefix+"HOST"),
		os.Getenv(prefix+"USER"),
		os.Getenv(prefix+"PASSWORD"),
		os.Getenv(prefix+"NAME"),
		os.Getenv(prefix+"PORT"),
		GetEnvDefault("DB_SSLMODE", "require"),
	)
	return dsn, nil
}

func ConnectDB(env string) (*gorm.DB, error) {
	dsn, err := getDBConfigByEnv(env)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	log.Println("Successfully connected to db")
	return db, nil
}

// NewStore opens the record store selected by STORE_DRIVER. The postgres
// store is migrated before it is returned.
func NewStore(settings Settings) (store.Store, error) {
	switch settings.StoreDriver {
	case "memory":
		log.Println("Using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	case "postgres":
		db, err := ConnectDB(settings.Env)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		DB = db
		return store.NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", settings.StoreDriver)
	}
}
