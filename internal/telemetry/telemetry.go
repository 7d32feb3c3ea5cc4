// Package telemetry holds the shared structured logger.
package telemetry

import (
	"linkpay/internal/config"

	"go.uber.org/zap"
)

// Logger is the process-wide zap logger. InitLogger must be called once at
// startup before any service is constructed.
var Logger *zap.Logger

func InitLogger() {
	var err error
	if config.IsProduction() {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}
