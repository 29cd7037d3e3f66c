package contracts

import (
	"context"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.Appointment, error)
	UpdateAppointment(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentRequest) (*responses.Appointment, error)
	GetAppointment(ctx context.Context, sessionData, appointmentID string) (*responses.Appointment, error)
	ListAppointments(ctx context.Context, sessionData string, query *requests.ListAppointmentsQuery) ([]responses.Appointment, int, error)
}

type AppointmentRepository interface {
	// CreateAppointment returns a SlotTaken error when an active appointment already holds the slot.
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (appointmentID string, err error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// FindActiveByDoctorAndDay returns appointments in [dayStart, dayEnd) whose status holds a slot.
	FindActiveByDoctorAndDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)
	// UpdateAppointment applies the update only while the stored status equals expectedStatus.
	// It reports whether a document matched.
	UpdateAppointment(ctx context.Context, appointmentID string, expectedStatus models.AppointmentStatus, update *models.AppointmentUpdate) (matched bool, err error)
	FindAll(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error)
}

type AppointmentEventPublisher interface {
	Publish(ctx context.Context, eventType string, appointment *models.Appointment) error
}
