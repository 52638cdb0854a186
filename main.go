// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"picturetime-dashboard/cmd"
	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/events"
	"picturetime-dashboard/internal/wire"
	"picturetime-dashboard/pkg/cache"
	"picturetime-dashboard/pkg/database"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	rdb, err := cache.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))

	repos := repository.NewRepository(db, logger)

	client := booking.NewClient(config.Booking.BaseURL, &http.Client{Timeout: config.Booking.Timeout}, logger)
	api := booking.NewCached(
		client,
		cache.NewJSONCache(rdb, "dashboard:"),
		config.Cache.CinemaTTL,
		config.Cache.LayoutTTL,
		logger,
	)

	publisher := events.NewPublisher(config.Broker.URL, config.Broker.Queue, logger)
	defer publisher.Close()

	app := wire.Wiring(repos, wire.Deps{
		Booking:   api,
		Feed:      cache.NewChangeFeed(rdb, logger),
		Publisher: publisher,
	}, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, app.Service.Auth, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
