package contracts

import (
	"context"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/dto/responses"
	"time"
)

type SlotCalendar interface {
	GenerateSlots(doctor *models.Doctor, date time.Time) ([]string, error)
	AvailableSlots(doctor *models.Doctor, date time.Time, activeBookings []models.Appointment) ([]string, error)
	SlotMinutes() int
}

type SlotUsecase interface {
	ListAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error)
}
