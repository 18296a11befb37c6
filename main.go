// main.go
package main

import (
	"context"
	"log"
	"time"

	"cinema-pos/cmd"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/scheduler"
	"cinema-pos/internal/wire"
	"cinema-pos/pkg/broker"
	"cinema-pos/pkg/database"
	"cinema-pos/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Schema first, the pool and repositories assume it is current
	if err := database.Migrate(database.DSN(config.Database), config.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	publisher, err := broker.NewPublisher(config.Broker.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to broker", zap.Error(err))
	}
	defer publisher.Close()

	repos := repository.NewRepository(db, rdb, config.Redis.CartTTL, logger)

	checks := []wire.HealthCheck{
		{Name: "postgres", Ping: db.Ping},
		{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
	app := wire.Wiring(repos, publisher, checks, config, logger)

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.Service.Auth.EnsureAdmin(bootCtx); err != nil {
		logger.Fatal("Failed to bootstrap admin operator", zap.Error(err))
	}
	cancel()

	if config.Scheduler.Enabled {
		jobs, err := scheduler.New(app.Service.Maintenance, config.Scheduler, logger)
		if err != nil {
			logger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		jobs.Start()
		defer func() {
			if err := jobs.Shutdown(); err != nil {
				logger.Error("Failed to stop scheduler", zap.Error(err))
			}
		}()
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
