package appointments

import (
	"context"
	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	SlotCalendar          contracts.SlotCalendar
	SessionService        contracts.SessionService
	LockService           contracts.LockerService
	EventPublisher        contracts.AppointmentEventPublisher
	StateMachine          *AppointmentStateMachine
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	slotCalendar contracts.SlotCalendar,
	sessionService contracts.SessionService,
	lockService contracts.LockerService,
	eventPublisher contracts.AppointmentEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = newAppointmentUsecase(
			appointmentRepository,
			doctorRepository,
			patientRepository,
			slotCalendar,
			sessionService,
			lockService,
			eventPublisher,
			internalConfig,
			logger,
		)
	})
	return appointmentUsecaseInstance
}

func newAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	slotCalendar contracts.SlotCalendar,
	sessionService contracts.SessionService,
	lockService contracts.LockerService,
	eventPublisher contracts.AppointmentEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *appointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		PatientRepository:     patientRepository,
		SlotCalendar:          slotCalendar,
		SessionService:        sessionService,
		LockService:           lockService,
		EventPublisher:        eventPublisher,
		StateMachine:          NewAppointmentStateMachine(DefaultAuthorizationMatrix()),
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	caller, err := uc.SessionService.ResolveCaller(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	utils.SanitizeUpdateAppointmentRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}
	if request.IsEmpty() {
		return nil, exceptions.ErrInvalidField("request", "must change at least one field")
	}

	current, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrAppointmentNotFound(appointmentID)
	}

	update, err := uc.StateMachine.Plan(caller, current, request)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.UpdateAppointment patch rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID),
			zap.String(constvars.LoggingCallerRoleKey, caller.Role),
			zap.String(constvars.LoggingStatusKey, string(current.Status)),
			zap.Error(err),
		)
		return nil, err
	}

	if update.ChangesSlot(current) {
		err = uc.rescheduleAppointment(ctx, current, update)
	} else {
		err = uc.applyUpdate(ctx, current, update)
	}
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment error applying update",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	update.ApplyTo(current)
	current.SetUpdatedAt()

	eventType := constvars.AppointmentEventUpdated
	if update.Status != nil {
		eventType = constvars.AppointmentEventStatusChanged
	}
	uc.publishEvent(ctx, eventType, current)

	uc.Log.Info("appointmentUsecase.UpdateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, string(current.Status)),
	)
	return toAppointmentResponse(current), nil
}

// rescheduleAppointment moves the appointment under the target slot's lock,
// re-checking that the target is generated and free of other active appointments.
func (uc *appointmentUsecase) rescheduleAppointment(ctx context.Context, current *models.Appointment, update *models.AppointmentUpdate) error {
	target := *current
	update.ApplyTo(&target)

	today, _ := utils.DayBounds(time.Now())
	if target.Date.Before(today) {
		return exceptions.ErrInvalidField("date", constvars.CustomValidationErrorMessages["not_past_date"])
	}

	doctor, err := uc.findDoctor(ctx, target.DoctorID.Hex())
	if err != nil {
		return err
	}
	err = uc.ensureSlotOffered(doctor, target.Date, target.Time)
	if err != nil {
		return err
	}

	return uc.withSlotLock(ctx, target.SlotLockKey(), func() error {
		err := uc.ensureSlotFree(ctx, doctor, &target)
		if err != nil {
			return err
		}
		return uc.applyUpdate(ctx, current, update)
	})
}

// applyUpdate writes the update only if the stored status is still the one the plan was checked against.
func (uc *appointmentUsecase) applyUpdate(ctx context.Context, current *models.Appointment, update *models.AppointmentUpdate) error {
	matched, err := uc.AppointmentRepository.UpdateAppointment(ctx, current.ID.Hex(), current.Status, update)
	if err != nil {
		return err
	}
	if matched {
		return nil
	}

	latest, err := uc.AppointmentRepository.FindByID(ctx, current.ID.Hex())
	if err != nil {
		return err
	}
	if latest == nil {
		return exceptions.ErrAppointmentNotFound(current.ID.Hex())
	}
	if latest.Status.IsTerminal() {
		return exceptions.ErrAppointmentAlreadyFinalized(current.ID.Hex(), string(latest.Status))
	}
	return exceptions.ErrStaleAppointmentStatus(current.ID.Hex())
}

func (uc *appointmentUsecase) GetAppointment(ctx context.Context, sessionData, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.GetAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	caller, err := uc.SessionService.ResolveCaller(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.GetAppointment error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(appointmentID)
	}

	if !caller.IsAdmin() && !caller.Owns(appointment) {
		return nil, exceptions.ErrAppointmentNotOwned(caller.ID, caller.Role, appointmentID)
	}

	uc.Log.Info("appointmentUsecase.GetAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return toAppointmentResponse(appointment), nil
}

// ListAppointments scopes patients and doctors to their own appointments; admins may filter freely.
func (uc *appointmentUsecase) ListAppointments(ctx context.Context, sessionData string, query *requests.ListAppointmentsQuery) ([]responses.Appointment, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, query),
	)

	caller, err := uc.SessionService.ResolveCaller(ctx, sessionData)
	if err != nil {
		return nil, 0, err
	}

	err = utils.ValidateStruct(query)
	if err != nil {
		return nil, 0, exceptions.ErrInputValidation(err)
	}

	filter := models.AppointmentFilter{
		DoctorID:  query.DoctorID,
		PatientID: query.PatientID,
		Status:    models.AppointmentStatus(query.Status),
		Offset:    query.Pagination.Offset(),
		Limit:     int64(query.Pagination.PageSize),
	}
	switch caller.Role {
	case constvars.RolePatient:
		filter.PatientID = caller.ID
	case constvars.RoleDoctor:
		filter.DoctorID = caller.ID
	}
	if query.Date != "" {
		date, err := utils.ParseCalendarDate(query.Date)
		if err != nil {
			return nil, 0, exceptions.ErrInvalidField("date", constvars.CustomValidationErrorMessages["calendar_date"])
		}
		filter.Date = &date
	}

	appointments, total, err := uc.AppointmentRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListAppointments error calling AppointmentRepository.FindAll",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("appointmentUsecase.ListAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(appointments)),
	)
	return toAppointmentResponses(appointments), total, nil
}

// publishEvent runs after the write has committed; a publish failure is logged and never returned.
func (uc *appointmentUsecase) publishEvent(ctx context.Context, eventType string, appointment *models.Appointment) {
	requestID := utils.GetRequestID(ctx)
	utils.LogBusinessEvent(uc.Log, eventType, requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID.Hex()),
		zap.String(constvars.LoggingPatientIDKey, appointment.PatientID.Hex()),
		zap.String(constvars.LoggingStatusKey, string(appointment.Status)),
	)

	err := uc.EventPublisher.Publish(ctx, eventType, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.publishEvent error calling EventPublisher.Publish",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
	}
}
