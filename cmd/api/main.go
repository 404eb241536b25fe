package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/salonhub/salon-scheduler/internal/auth"
	"github.com/salonhub/salon-scheduler/internal/config"
	"github.com/salonhub/salon-scheduler/internal/db"
	"github.com/salonhub/salon-scheduler/internal/routes"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	revoker := auth.NewRedisRevoker(redisClient)

	r := gin.Default()

	routes.Setup(r, database, cfg, revoker)

	log.Printf("listening on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
