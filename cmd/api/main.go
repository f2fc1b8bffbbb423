package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/skillbridge/marketplace/internal/config"
	dbpkg "github.com/skillbridge/marketplace/internal/db"
	"github.com/skillbridge/marketplace/internal/handlers"
	"github.com/skillbridge/marketplace/internal/routes"
)

func main() {

	cfg := config.Load()
	log := newLogger(cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	if err := handlers.EnsureAdminUser(db, cfg, log); err != nil {
		log.Error("admin bootstrap failed", "err", err)
		os.Exit(1)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
