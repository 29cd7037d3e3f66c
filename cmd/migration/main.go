package main

import (
	"context"
	"hospital-service/internal/app/config"
	"hospital-service/internal/app/drivers/database"
	"hospital-service/internal/app/drivers/logger"
	"hospital-service/internal/app/services/core/appointments"
	"time"

	"go.uber.org/zap"
)

// Creates the appointments indexes, including the unique slot index that backs double booking protection.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	defer mongoDB.Client().Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := appointments.EnsureAppointmentIndexes(ctx, mongoDB)
	if err != nil {
		zapLogger.Fatal("Failed to create appointment indexes", zap.Error(err))
	}

	zapLogger.Info("Applied appointment indexes", zap.Strings("indexes", names))
}
