package appointments

import (
	"context"
	"errors"
	"hospital-service/internal/app/config"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/slot"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeAppointmentRepository keeps appointments in memory and rejects a second
// active appointment for the same doctor, day and time like the unique slot index.
type fakeAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]models.Appointment
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: make(map[primitive.ObjectID]models.Appointment)}
}

func (r *fakeAppointmentRepository) holdsSlot(candidate models.Appointment) bool {
	if !candidate.Status.IsActive() {
		return false
	}
	for id, existing := range r.appointments {
		if id == candidate.ID || !existing.Status.IsActive() {
			continue
		}
		if existing.DoctorID == candidate.DoctorID && existing.Date.Equal(candidate.Date) && existing.Time == candidate.Time {
			return true
		}
	}
	return false
}

func (r *fakeAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *appointment
	stored.ID = primitive.NewObjectID()
	if r.holdsSlot(stored) {
		return "", exceptions.ErrSlotTaken(errors.New("E11000 duplicate key error"), stored.SlotLockKey())
	}
	r.appointments[stored.ID] = stored
	return stored.ID.Hex(), nil
}

func (r *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	id, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepository) FindActiveByDoctorAndDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, appointment := range r.appointments {
		if appointment.DoctorID.Hex() != doctorID || !appointment.Status.IsActive() {
			continue
		}
		if appointment.Date.Before(dayStart) || !appointment.Date.Before(dayEnd) {
			continue
		}
		out = append(out, appointment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (r *fakeAppointmentRepository) UpdateAppointment(ctx context.Context, appointmentID string, expectedStatus models.AppointmentStatus, update *models.AppointmentUpdate) (bool, error) {
	id, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok || appointment.Status != expectedStatus {
		return false, nil
	}

	update.ApplyTo(&appointment)
	if r.holdsSlot(appointment) {
		return false, exceptions.ErrSlotTaken(errors.New("E11000 duplicate key error"), appointment.SlotLockKey())
	}
	appointment.SetUpdatedAt()
	r.appointments[id] = appointment
	return true, nil
}

func (r *fakeAppointmentRepository) FindAll(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Appointment
	for _, appointment := range r.appointments {
		if filter.DoctorID != "" && appointment.DoctorID.Hex() != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && appointment.PatientID.Hex() != filter.PatientID {
			continue
		}
		if filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		if filter.Date != nil {
			dayStart, dayEnd := utils.DayBounds(*filter.Date)
			if appointment.Date.Before(dayStart) || !appointment.Date.Before(dayEnd) {
				continue
			}
		}
		matched = append(matched, appointment)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].Time < matched[j].Time
	})

	total := len(matched)
	start := int(filter.Offset)
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+int(filter.Limit) < end {
		end = start + int(filter.Limit)
	}
	return matched[start:end], total, nil
}

func (r *fakeAppointmentRepository) forceStatus(appointmentID string, status models.AppointmentStatus) {
	id, _ := primitive.ObjectIDFromHex(appointmentID)
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment := r.appointments[id]
	appointment.Status = status
	r.appointments[id] = appointment
}

type fakeDoctorRepository struct {
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return r.doctors[doctorID], nil
}

type fakePatientRepository struct {
	patients map[string]*models.Patient
}

func (r *fakePatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return r.patients[patientID], nil
}

// fakeSessionService reads session data of the form "role:id".
type fakeSessionService struct{}

func (s *fakeSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	role, id, _ := strings.Cut(sessionData, ":")
	return &models.Session{Role: role, UserID: id, PatientID: id, DoctorID: id}, nil
}

func (s *fakeSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	return sessionID, nil
}

func (s *fakeSessionService) ResolveCaller(ctx context.Context, sessionData string) (models.CallerIdentity, error) {
	session, _ := s.ParseSessionData(ctx, sessionData)
	caller, ok := session.CallerIdentity()
	if !ok {
		return models.CallerIdentity{}, exceptions.ErrInvalidSessionRole(nil)
	}
	return caller, nil
}

type fakeLockService struct {
	mu    sync.Mutex
	locks map[string]string
	// tryLockHook runs after a lock is acquired, before the caller proceeds.
	tryLockHook func(key string)
}

func newFakeLockService() *fakeLockService {
	return &fakeLockService{locks: make(map[string]string)}
}

func (l *fakeLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	if _, held := l.locks[key]; held {
		l.mu.Unlock()
		return false, "", nil
	}
	lockValue := utils.GenerateLockToken()
	l.locks[key] = lockValue
	hook := l.tryLockHook
	l.mu.Unlock()

	if hook != nil {
		hook(key)
	}
	return true, lockValue, nil
}

func (l *fakeLockService) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == lockValue {
		delete(l.locks, key)
	}
	return nil
}

func (l *fakeLockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

func (l *fakeLockService) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

type publishedEvent struct {
	eventType     string
	appointmentID string
	status        models.AppointmentStatus
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakeEventPublisher) Publish(ctx context.Context, eventType string, appointment *models.Appointment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType, appointment.ID.Hex(), appointment.Status})
	return p.err
}

func (p *fakeEventPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.eventType)
	}
	return out
}

type bookingFixture struct {
	usecase      *appointmentUsecase
	repository   *fakeAppointmentRepository
	locker       *fakeLockService
	publisher    *fakeEventPublisher
	doctor       *models.Doctor
	otherDoctor  *models.Doctor
	patient      *models.Patient
	otherPatient *models.Patient
	monday       time.Time
	ctx          context.Context
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	doctor := &models.Doctor{
		ID:           primitive.NewObjectID(),
		Name:         "dr. Sari",
		WorkingDays:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
		Fee:          150000,
	}
	otherDoctor := &models.Doctor{
		ID:           primitive.NewObjectID(),
		Name:         "dr. Budi",
		WorkingDays:  []string{"Monday"},
		WorkingHours: models.WorkingHours{Start: "13:00", End: "15:00"},
		Fee:          90000,
	}
	patient := &models.Patient{ID: primitive.NewObjectID(), Name: "Ana"}
	otherPatient := &models.Patient{ID: primitive.NewObjectID(), Name: "Rudi"}

	repository := newFakeAppointmentRepository()
	locker := newFakeLockService()
	publisher := &fakeEventPublisher{}
	internalConfig := &config.InternalConfig{
		Scheduling: config.Scheduling{
			SlotMinutes:             constvars.DefaultSlotMinutes,
			SlotLockTTLInSeconds:    constvars.DefaultSlotLockTTLInSeconds,
			RequestTimeoutInSeconds: constvars.DefaultRequestTimeoutInSecond,
		},
	}

	usecase := newAppointmentUsecase(
		repository,
		&fakeDoctorRepository{doctors: map[string]*models.Doctor{
			doctor.ID.Hex():      doctor,
			otherDoctor.ID.Hex(): otherDoctor,
		}},
		&fakePatientRepository{patients: map[string]*models.Patient{
			patient.ID.Hex():      patient,
			otherPatient.ID.Hex(): otherPatient,
		}},
		slot.NewSlotCalendar(constvars.DefaultSlotMinutes),
		&fakeSessionService{},
		locker,
		publisher,
		internalConfig,
		zap.NewNop(),
	)

	return &bookingFixture{
		usecase:      usecase,
		repository:   repository,
		locker:       locker,
		publisher:    publisher,
		doctor:       doctor,
		otherDoctor:  otherDoctor,
		patient:      patient,
		otherPatient: otherPatient,
		monday:       nextWeekday(time.Monday),
		ctx:          context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id"),
	}
}

func (f *bookingFixture) patientSession() string {
	return constvars.RolePatient + ":" + f.patient.ID.Hex()
}

func (f *bookingFixture) otherPatientSession() string {
	return constvars.RolePatient + ":" + f.otherPatient.ID.Hex()
}

func (f *bookingFixture) doctorSession() string {
	return constvars.RoleDoctor + ":" + f.doctor.ID.Hex()
}

func (f *bookingFixture) adminSession() string {
	return constvars.RoleAdmin + ":admin-1"
}

// nextWeekday returns midnight of the first weekday strictly after today.
func nextWeekday(weekday time.Weekday) time.Time {
	day, _ := utils.DayBounds(time.Now().AddDate(0, 0, 1))
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func stringPtr(value string) *string {
	return &value
}

func float64Ptr(value float64) *float64 {
	return &value
}
