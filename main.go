// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"product-app/cmd"
	"product-app/internal/data/repository"
	"product-app/internal/wire"
	"product-app/pkg/cloud"
	"product-app/pkg/database"
	"product-app/pkg/storage"
	"product-app/pkg/utils"

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
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("Application stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	awsConfig, err := cloud.LoadAWSConfig(ctx, config.AWS)
	if err != nil {
		return err
	}

	// Initialize repositories for the configured store
	var repos *repository.Repository
	switch config.Store.Driver {
	case utils.StorePostgres:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if config.Database.Migrate {
			if err := db.Migrate(ctx); err != nil {
				return err
			}
			logger.Info("Database migrations applied")
		}

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)

	case utils.StoreMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		repos = repository.NewMemoryRepository()

	default:
		client := database.NewDynamoClient(awsConfig, config.AWS)
		repos = repository.NewDynamoRepository(client, config.Dynamo, logger)
		logger.Info("DynamoDB store ready",
			zap.String("users_table", config.Dynamo.UsersTable),
			zap.String("products_table", config.Dynamo.ProductsTable),
		)
	}

	objects := storage.NewS3Store(storage.NewS3Client(awsConfig, config.AWS), config.AWS, config.S3, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, objects, config, logger)

	return cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
