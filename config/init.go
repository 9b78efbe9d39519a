package config

import (
	"context"
	"fmt"
	"log"

	"spotbook/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

var Store store.Store

func InitApp(ctx context.Context) (*gin.Engine, *cron.Cron, Settings, error) {
	LoadEnv()
	settings := LoadSettings()
	if settings.JWTSecret == "" {
		return nil, nil, settings, fmt.Errorf("JWT_SECRET is required")
	}

	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, nil, settings, err
	}

	if err := initComponents(ctx, settings); err != nil {
		return nil, nil, settings, fmt.Errorf("failed to initialize components: %w", err)
	}

	c := cron.New()

	return router, c, settings, nil
}

func initComponents(ctx context.Context, settings Settings) error {
	var err error
	if Store, err = NewStore(settings); err != nil {
		return err
	}
	if Cloudinary, err = ConnectCloudinary(); err != nil {
		return fmt.Errorf("failed to init Cloudinary: %w", err)
	}
	if RedisClient, err = ConnectRedis(ctx); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("All components initialized successfully")
	return nil
}
