// Package main is the entry point for the catalog-service application.
//
// @title           Catalog Service API
// @version         1.0.0
// @description     Read-optimized catalog API serving product listings, special
// @description     offers and localized item details aggregated from an upstream
// @description     games database.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/catalog-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Catalog
// @tag.description Product listing and detail operations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/catalog-service/docs" // swagger docs

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	app.InitializeLogger()

	application, cleanup := app.InitializeApp(cfg)
	defer cleanup()

	if cfg.Catalog.PreloadOnStart {
		go application.Preloader.Run(context.Background())
	}

	server := app.NewServer(application.Router, cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
