package appointments

import (
	"context"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const slotUnlockTimeout = 2 * time.Second

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	caller, err := uc.SessionService.ResolveCaller(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	utils.SanitizeCreateAppointmentRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	err = authorizeBooking(caller, request)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment booking rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID),
			zap.String(constvars.LoggingCallerRoleKey, caller.Role),
			zap.Error(err),
		)
		return nil, err
	}

	date, err := utils.ParseCalendarDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrInvalidField("date", constvars.CustomValidationErrorMessages["calendar_date"])
	}
	clock, err := utils.NormalizeClock(request.Time)
	if err != nil {
		return nil, exceptions.ErrInvalidField("time", constvars.CustomValidationErrorMessages["clock"])
	}

	doctor, err := uc.findDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error calling PatientRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(request.PatientID)
	}

	err = uc.ensureSlotOffered(doctor, date, clock)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment slot not bookable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.String(constvars.LoggingDateKey, request.Date),
			zap.String(constvars.LoggingTimeKey, clock),
			zap.Error(err),
		)
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		Date:          date,
		Time:          clock,
		Status:        models.AppointmentStatusScheduled,
		Type:          models.AppointmentTypeOrDefault(request.Type),
		Description:   request.Description,
		Symptoms:      request.Symptoms.String(),
		PaymentStatus: models.PaymentStatusPending,
		PaymentAmount: doctor.Fee,
	}
	if request.PaymentAmount != nil {
		appointment.PaymentAmount = *request.PaymentAmount
	}
	appointment.SetCreatedAtUpdatedAt()

	err = uc.withSlotLock(ctx, appointment.SlotLockKey(), func() error {
		err := uc.ensureSlotFree(ctx, doctor, appointment)
		if err != nil {
			return err
		}

		appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
		if err != nil {
			return err
		}
		appointment.ID, err = primitive.ObjectIDFromHex(appointmentID)
		if err != nil {
			return exceptions.ErrMongoDBNotObjectID(err)
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error booking slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.String(constvars.LoggingDateKey, request.Date),
			zap.String(constvars.LoggingTimeKey, clock),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, constvars.AppointmentEventBooked, appointment)

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)
	return toAppointmentResponse(appointment), nil
}

// authorizeBooking applies the role rules for booking and fills patientId for patients booking for themselves.
func authorizeBooking(caller models.CallerIdentity, request *requests.CreateAppointmentRequest) error {
	switch caller.Role {
	case constvars.RolePatient:
		if request.PatientID == "" {
			request.PatientID = caller.ID
		}
		if request.PatientID != caller.ID {
			return exceptions.ErrBookingForeignPatient(caller.ID, request.PatientID)
		}
		if request.PaymentAmount != nil {
			return exceptions.ErrPaymentOverrideNotAllowed(caller.Role)
		}
		return nil
	case constvars.RoleAdmin:
		if request.PatientID == "" {
			return exceptions.ErrInvalidField("patientId", constvars.CustomValidationErrorMessages["required"])
		}
		return nil
	default:
		return exceptions.ErrBookingRoleNotAllowed(caller.Role)
	}
}

func (uc *appointmentUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(doctorID)
	}
	return doctor, nil
}

// ensureSlotOffered fails with ClosedDay or SlotNotOffered when clock is not one of the doctor's slots on date.
func (uc *appointmentUsecase) ensureSlotOffered(doctor *models.Doctor, date time.Time, clock string) error {
	slots, err := uc.SlotCalendar.GenerateSlots(doctor, date)
	if err != nil {
		return err
	}
	if !slices.Contains(slots, clock) {
		return exceptions.ErrSlotNotOffered(clock, doctor.ID.Hex(), utils.FormatCalendarDate(date))
	}
	return nil
}

// ensureSlotFree re-reads the doctor's active appointments and fails with SlotTaken
// when another appointment holds the target's time.
func (uc *appointmentUsecase) ensureSlotFree(ctx context.Context, doctor *models.Doctor, target *models.Appointment) error {
	dayStart, dayEnd := utils.DayBounds(target.Date)
	active, err := uc.AppointmentRepository.FindActiveByDoctorAndDay(ctx, doctor.ID.Hex(), dayStart, dayEnd)
	if err != nil {
		return err
	}

	others := make([]models.Appointment, 0, len(active))
	for _, appointment := range active {
		if !target.ID.IsZero() && appointment.ID == target.ID {
			continue
		}
		others = append(others, appointment)
	}

	available, err := uc.SlotCalendar.AvailableSlots(doctor, target.Date, others)
	if err != nil {
		return err
	}
	if !slices.Contains(available, target.Time) {
		return exceptions.ErrSlotTaken(nil, target.SlotLockKey())
	}
	return nil
}

// withSlotLock runs fn while holding the named lock for one slot. A lock held by
// another request is reported as SlotTaken without waiting.
func (uc *appointmentUsecase) withSlotLock(ctx context.Context, key string, fn func() error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ttl := time.Duration(uc.InternalConfig.Scheduling.SlotLockTTLInSeconds) * time.Second

	acquired, lockValue, err := uc.LockService.TryLock(ctx, key, ttl)
	if err != nil {
		return err
	}
	if !acquired {
		uc.Log.Warn("appointmentUsecase.withSlotLock slot lock busy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return exceptions.ErrSlotLockBusy(key)
	}

	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), slotUnlockTimeout)
		defer cancel()
		err := uc.LockService.Unlock(unlockCtx, key, lockValue)
		if err != nil {
			uc.Log.Error("appointmentUsecase.withSlotLock error calling LockService.Unlock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}()

	return fn()
}
