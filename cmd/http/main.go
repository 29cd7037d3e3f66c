package main

import (
	"context"
	"errors"
	"hospital-service/internal/app/config"
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"
	"hospital-service/internal/app/delivery/http/routers"
	"hospital-service/internal/app/drivers/database"
	"hospital-service/internal/app/drivers/logger"
	"hospital-service/internal/app/drivers/messaging"
	"hospital-service/internal/app/services/core/appointments"
	"hospital-service/internal/app/services/core/doctors"
	"hospital-service/internal/app/services/core/patients"
	"hospital-service/internal/app/services/core/session"
	"hospital-service/internal/app/services/core/slot"
	"hospital-service/internal/app/services/shared/events"
	"hospital-service/internal/app/services/shared/locker"
	"hospital-service/internal/app/services/shared/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    ":" + internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
	bootstrap.Shutdown(shutdownCtx)
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	eventPublisher, err := events.NewAppointmentEventPublisher(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.RabbitMQ.AppointmentEventsQueue,
		bootstrap.Logger,
	)
	if err != nil {
		return err
	}

	// Session
	sessionService := session.NewSessionService(redisRepository, bootstrap.Logger)

	// Repositories
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB)

	// Slots
	slotCalendar := slot.NewSlotCalendar(bootstrap.InternalConfig.Scheduling.SlotMinutes)
	slotUsecase := slot.NewSlotUsecase(appointmentRepository, doctorRepository, slotCalendar, bootstrap.Logger)
	slotController := controllers.NewSlotController(bootstrap.Logger, slotUsecase, bootstrap.InternalConfig)

	// Appointments
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		doctorRepository,
		patientRepository,
		slotCalendar,
		sessionService,
		lockService,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase, bootstrap.InternalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, appointmentController, slotController)
	return nil
}
