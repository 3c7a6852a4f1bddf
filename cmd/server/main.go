package main

import (
	"log"

	"mindhaven-backend/internal/bootstrap"
	"mindhaven-backend/internal/config"
	"mindhaven-backend/internal/server"
	"mindhaven-backend/pkg/database"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Invalid REDIS_URL, live notifications disabled: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
		}
	} else {
		log.Println("REDIS_URL not set, live notifications disabled")
	}

	srv := server.NewServer(db, redisClient, cfg)

	log.Printf("Listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
