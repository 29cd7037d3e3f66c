package appointments

import (
	"errors"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *bookingFixture) bookingRequest(date time.Time, clock string) *requests.CreateAppointmentRequest {
	return &requests.CreateAppointmentRequest{
		DoctorID: f.doctor.ID.Hex(),
		Date:     utils.FormatCalendarDate(date),
		Time:     clock,
	}
}

func (f *bookingFixture) availableOn(t *testing.T, date time.Time) []string {
	t.Helper()
	dayStart, dayEnd := utils.DayBounds(date)
	active, err := f.repository.FindActiveByDoctorAndDay(f.ctx, f.doctor.ID.Hex(), dayStart, dayEnd)
	require.NoError(t, err)
	available, err := f.usecase.SlotCalendar.AvailableSlots(f.doctor, date, active)
	require.NoError(t, err)
	return available
}

func TestCreateAppointment(t *testing.T) {
	t.Run("Patient Books Free Slot With Defaults", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.Type = "checkup"
		request.Symptoms = requests.JoinSymptoms([]string{"fever", "cough"})

		response, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), request)
		require.NoError(t, err)

		assert.NotEmpty(t, response.ID, "appointment should get an id")
		assert.Equal(t, f.patient.ID.Hex(), response.PatientID, "patient should default to the caller")
		assert.Equal(t, f.doctor.ID.Hex(), response.DoctorID)
		assert.Equal(t, utils.FormatCalendarDate(f.monday), response.Date)
		assert.Equal(t, "10:00", response.Time)
		assert.Equal(t, string(models.AppointmentStatusScheduled), response.Status)
		assert.Equal(t, string(models.AppointmentTypeConsultation), response.Type, "unknown type should fall back to consultation")
		assert.Equal(t, "fever, cough", response.Symptoms)
		assert.Equal(t, string(models.PaymentStatusPending), response.PaymentStatus)
		assert.Equal(t, f.doctor.Fee, response.PaymentAmount, "payment amount should default to the doctor fee")
		assert.Equal(t, []string{constvars.AppointmentEventBooked}, f.publisher.types())
		assert.Zero(t, f.locker.held(), "slot lock should be released")
	})

	t.Run("Booked Time Leaves Availability", func(t *testing.T) {
		f := newBookingFixture(t)
		assert.Len(t, f.availableOn(t, f.monday), 16)

		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "10:00"))
		require.NoError(t, err)

		available := f.availableOn(t, f.monday)
		assert.Len(t, available, 15)
		assert.NotContains(t, available, "10:00")
		assert.Len(t, f.availableOn(t, f.monday.AddDate(0, 0, 1)), 16, "other days should be unaffected")
	})

	t.Run("Second Booking For Same Slot", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "10:00"))
		require.NoError(t, err)

		_, err = f.usecase.CreateAppointment(f.ctx, f.otherPatientSession(), f.bookingRequest(f.monday, "10:00"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindSlotTaken), "second booking should be SlotTaken, got %v", err)
		assert.Len(t, f.publisher.types(), 1)
	})

	t.Run("Short Clock Is Normalized", func(t *testing.T) {
		f := newBookingFixture(t)
		response, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "9:00"))
		require.NoError(t, err)
		assert.Equal(t, "09:00", response.Time)
	})

	t.Run("No Symptoms Stored As Empty", func(t *testing.T) {
		f := newBookingFixture(t)
		response, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "11:00"))
		require.NoError(t, err)
		assert.Equal(t, "", response.Symptoms)
	})

	t.Run("Doctor Not Found", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.DoctorID = "65a1b2c3d4e5f60718293a4b"

		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Patient Not Found", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.PatientID = "65a1b2c3d4e5f60718293a4b"

		_, err := f.usecase.CreateAppointment(f.ctx, f.adminSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Closed Day", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(nextWeekday(time.Saturday), "10:00"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindClosedDay), "saturday should be a closed day, got %v", err)
	})

	t.Run("Time Not On Slot Grid", func(t *testing.T) {
		f := newBookingFixture(t)
		for _, clock := range []string{"10:15", "17:00", "08:30"} {
			_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, clock))
			assert.True(t, exceptions.IsKind(err, exceptions.KindValidation), "%s should be rejected as validation error, got %v", clock, err)
		}
		assert.Empty(t, f.publisher.types())
	})

	t.Run("Past Date", func(t *testing.T) {
		f := newBookingFixture(t)
		yesterday := time.Now().AddDate(0, 0, -1)
		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(yesterday, "10:00"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Malformed Request", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "25:00")
		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))

		request = f.bookingRequest(f.monday, "10:00")
		request.DoctorID = "not-an-id"
		_, err = f.usecase.CreateAppointment(f.ctx, f.patientSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Publish Failure Does Not Fail Booking", func(t *testing.T) {
		f := newBookingFixture(t)
		f.publisher.err = errors.New("broker down")

		response, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "10:00"))
		require.NoError(t, err)
		assert.NotEmpty(t, response.ID)
	})
}

func TestCreateAppointment_RoleRules(t *testing.T) {
	t.Run("Doctor Cannot Book", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.PatientID = f.patient.ID.Hex()

		_, err := f.usecase.CreateAppointment(f.ctx, f.doctorSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
	})

	t.Run("Patient Cannot Book For Someone Else", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.PatientID = f.otherPatient.ID.Hex()

		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
	})

	t.Run("Patient Cannot Override Payment Amount", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.PaymentAmount = float64Ptr(1)

		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindAuthorization))
		assert.Len(t, f.availableOn(t, f.monday), 16, "rejected booking should not hold the slot")
	})

	t.Run("Admin Books For Patient With Payment Override", func(t *testing.T) {
		f := newBookingFixture(t)
		request := f.bookingRequest(f.monday, "10:00")
		request.PatientID = f.otherPatient.ID.Hex()
		request.PaymentAmount = float64Ptr(0)
		request.Type = "emergency"

		response, err := f.usecase.CreateAppointment(f.ctx, f.adminSession(), request)
		require.NoError(t, err)
		assert.Equal(t, f.otherPatient.ID.Hex(), response.PatientID)
		assert.Equal(t, float64(0), response.PaymentAmount)
		assert.Equal(t, string(models.AppointmentTypeEmergency), response.Type)
	})

	t.Run("Admin Must Name The Patient", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.usecase.CreateAppointment(f.ctx, f.adminSession(), f.bookingRequest(f.monday, "10:00"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})
}

func TestCreateAppointment_Concurrency(t *testing.T) {
	t.Run("Concurrent Bookings For One Slot", func(t *testing.T) {
		f := newBookingFixture(t)

		const attempts = 8
		var (
			wg      sync.WaitGroup
			start   = make(chan struct{})
			results = make(chan error, attempts)
		)
		for i := 0; i < attempts; i++ {
			session := f.patientSession()
			if i%2 == 1 {
				session = f.otherPatientSession()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := f.usecase.CreateAppointment(f.ctx, session, f.bookingRequest(f.monday, "10:00"))
				results <- err
			}()
		}
		close(start)
		wg.Wait()
		close(results)

		successes := 0
		for err := range results {
			if err == nil {
				successes++
				continue
			}
			assert.True(t, exceptions.IsKind(err, exceptions.KindSlotTaken), "losing booking should be SlotTaken, got %v", err)
		}
		assert.Equal(t, 1, successes, "exactly one booking should win")
		assert.NotContains(t, f.availableOn(t, f.monday), "10:00")
		assert.Zero(t, f.locker.held())
	})

	t.Run("Lock Held By Another Request", func(t *testing.T) {
		f := newBookingFixture(t)
		key := models.SlotLockKey(f.doctor.ID.Hex(), utils.FormatCalendarDate(f.monday), "10:00")
		f.locker.locks[key] = "someone-else"

		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "10:00"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindSlotTaken))
		assert.Len(t, f.availableOn(t, f.monday), 16, "nothing should be written without the lock")
	})

	t.Run("Availability Rechecked Under Lock", func(t *testing.T) {
		f := newBookingFixture(t)
		f.locker.tryLockHook = func(key string) {
			f.locker.tryLockHook = nil
			_, err := f.repository.CreateAppointment(f.ctx, &models.Appointment{
				PatientID: f.otherPatient.ID,
				DoctorID:  f.doctor.ID,
				Date:      f.monday,
				Time:      "10:00",
				Status:    models.AppointmentStatusScheduled,
			})
			require.NoError(t, err)
		}

		_, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "10:00"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindSlotTaken), "booking that lost the race should be SlotTaken, got %v", err)
		assert.Zero(t, f.locker.held())
	})
}

func TestCreateAppointment_CancellationFreesSlot(t *testing.T) {
	f := newBookingFixture(t)

	booked, err := f.usecase.CreateAppointment(f.ctx, f.patientSession(), f.bookingRequest(f.monday, "10:00"))
	require.NoError(t, err)

	_, err = f.usecase.UpdateAppointment(f.ctx, f.patientSession(), booked.ID, &requests.UpdateAppointmentRequest{
		Status: stringPtr(string(models.AppointmentStatusCancelled)),
	})
	require.NoError(t, err)
	assert.True(t, slices.Contains(f.availableOn(t, f.monday), "10:00"), "cancelled appointment should free its slot")

	rebooked, err := f.usecase.CreateAppointment(f.ctx, f.otherPatientSession(), f.bookingRequest(f.monday, "10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, booked.ID, rebooked.ID)
}
