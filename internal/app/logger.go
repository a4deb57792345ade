// Package app provides application initialization and dependency wiring.
package app

import (
	"os"

	"github.com/guttosm/catalog-service/internal/logger"
)

// InitializeLogger initializes the JSON logger from environment variables.
func InitializeLogger() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	pretty := os.Getenv("LOG_PRETTY") == "true"
	logger.Init(logLevel, pretty)
}
