package slot

import (
	"context"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

var (
	slotUsecaseInstance contracts.SlotUsecase
	onceSlotUsecase     sync.Once
)

type slotUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	SlotCalendar          contracts.SlotCalendar
	Log                   *zap.Logger
}

func NewSlotUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	slotCalendar contracts.SlotCalendar,
	logger *zap.Logger,
) contracts.SlotUsecase {
	onceSlotUsecase.Do(func() {
		slotUsecaseInstance = newSlotUsecase(appointmentRepository, doctorRepository, slotCalendar, logger)
	})
	return slotUsecaseInstance
}

func newSlotUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	slotCalendar contracts.SlotCalendar,
	logger *zap.Logger,
) *slotUsecase {
	return &slotUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		SlotCalendar:          slotCalendar,
		Log:                   logger,
	}
}

// ListAvailableSlots reads without locking; the booking path re-checks under the slot lock.
func (uc *slotUsecase) ListAvailableSlots(ctx context.Context, doctorID, date string) (*responses.AvailableSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.ListAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, date),
	)

	request := &requests.ListAvailableSlotsRequest{DoctorID: doctorID, Date: date}
	err := utils.ValidateStruct(request)
	if err != nil {
		uc.Log.Error("slotUsecase.ListAvailableSlots validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	day, err := utils.ParseCalendarDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrInvalidField("date", constvars.CustomValidationErrorMessages["calendar_date"])
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		uc.Log.Error("slotUsecase.ListAvailableSlots error calling DoctorRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(request.DoctorID)
	}

	generated, err := uc.SlotCalendar.GenerateSlots(doctor, day)
	if err != nil {
		uc.Log.Info("slotUsecase.ListAvailableSlots no slots generated",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	dayStart, dayEnd := utils.DayBounds(day)
	activeBookings, err := uc.AppointmentRepository.FindActiveByDoctorAndDay(ctx, request.DoctorID, dayStart, dayEnd)
	if err != nil {
		uc.Log.Error("slotUsecase.ListAvailableSlots error calling AppointmentRepository.FindActiveByDoctorAndDay",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	available, err := uc.SlotCalendar.AvailableSlots(doctor, day, activeBookings)
	if err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(generated)-len(available))
	availableSet := make(map[string]struct{}, len(available))
	for _, slot := range available {
		availableSet[slot] = struct{}{}
	}
	for _, slot := range generated {
		if _, ok := availableSet[slot]; !ok {
			booked = append(booked, slot)
		}
	}

	uc.Log.Info("slotUsecase.ListAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(available)),
	)
	return &responses.AvailableSlots{
		DoctorID:    request.DoctorID,
		Date:        utils.FormatCalendarDate(day),
		Weekday:     day.Weekday().String(),
		SlotMinutes: uc.SlotCalendar.SlotMinutes(),
		Slots:       generated,
		Booked:      booked,
		Available:   available,
	}, nil
}
