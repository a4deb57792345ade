package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/catalog-service/config"
	internalhttp "github.com/guttosm/catalog-service/internal/http"
	"github.com/guttosm/catalog-service/internal/middleware"
	"github.com/guttosm/catalog-service/internal/service"
)

// App holds the assembled application: the HTTP router, the warm-start
// preloader and the teardown hooks for everything that needs a clean stop.
type App struct {
	Router    *gin.Engine
	Preloader *service.Preloader

	services *ServiceComponents
	database *DatabaseComponents
	asyncLog *middleware.AsyncLogger
}

// InitializeApp wires configuration into the full service graph and
// returns the application together with its shutdown function.
func InitializeApp(cfg config.Config) (*App, func()) {
	components := InitializeServices(cfg)

	database := InitializeDatabase(cfg.Database)

	var (
		loggingService service.LoggingService
		asyncLogger    *middleware.AsyncLogger
	)
	if database != nil {
		loggingService = database.LoggingService
		asyncLogger = middleware.NewAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())
	}

	handler := internalhttp.NewHandler(
		components.Catalog,
		internalhttp.WithCacheMaxAge(cfg.Cache.ViewTTL),
	)

	healthHandler := internalhttp.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("upstream", components.UpstreamCircuitBreaker)
	if database != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_logs", database.LogsCircuitBreaker)
		healthHandler.RegisterChecker("mongodb", internalhttp.CheckerFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return database.DB.HealthCheck(ctx)
		}))
	}

	router := internalhttp.NewRouter(handler, healthHandler, internalhttp.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		LoggingService: loggingService,
		AsyncLogger:    asyncLogger,
	})

	app := &App{
		Router:    router,
		Preloader: components.Preloader,
		services:  components,
		database:  database,
		asyncLog:  asyncLogger,
	}

	return app, app.shutdown
}

// shutdown stops background workers and closes external connections in
// reverse dependency order.
func (a *App) shutdown() {
	if a.asyncLog != nil {
		a.asyncLog.Stop()
	}

	a.services.ViewStore.Stop()
	a.services.TranslationStore.Stop()

	if a.database != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.database.DB.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Error closing MongoDB connection")
		}
	}

	log.Info().Msg("Application shutdown complete")
}
