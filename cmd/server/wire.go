// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"marketplace_backend/internal/app"
	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/platform/database"
	"marketplace_backend/internal/platform/logger"
	"marketplace_backend/internal/product"
	"marketplace_backend/internal/seller"
	"marketplace_backend/internal/shared"
	"marketplace_backend/internal/upload"
	"marketplace_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Token codec and upload relay
		auth.NewJWTService,
		upload.NewService,

		// Repositories
		user.NewGORMRepository,
		seller.NewGORMRepository,
		product.NewGORMRepository,

		// Access guard and its directory adapters
		user.NewDirectoryAdapter,
		seller.NewDirectoryAdapter,
		product.NewCatalogAdapter,
		guard.New,

		// Services
		user.NewService,
		wire.Bind(new(shared.UserService), new(*user.ServiceImplementation)),
		auth.NewOAuthService,
		seller.NewService,
		product.NewService,

		// Handlers
		auth.NewHandler,
		user.NewHandler,
		seller.NewHandler,
		product.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
