package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/sistema-manobrista/valet-api/internal/config"
	dbpkg "github.com/sistema-manobrista/valet-api/internal/db"
	"github.com/sistema-manobrista/valet-api/internal/logging"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	"github.com/sistema-manobrista/valet-api/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.NewLogger()
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
