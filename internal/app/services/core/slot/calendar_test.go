package slot

import (
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 2030-01-07 is a Monday.
var monday = time.Date(2030, time.January, 7, 0, 0, 0, 0, time.Local)

func weekdayDoctor() *models.Doctor {
	return &models.Doctor{
		ID:           primitive.NewObjectID(),
		Name:         "Dr. Rivera",
		WorkingDays:  []string{"Monday", "tue", "Wednesday", "thu", "Friday"},
		WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
		Fee:          150000,
	}
}

func TestSlotCalendar_GenerateSlots(t *testing.T) {
	calendar := NewSlotCalendar(constvars.DefaultSlotMinutes)

	t.Run("Full Working Day", func(t *testing.T) {
		slots, err := calendar.GenerateSlots(weekdayDoctor(), monday)
		require.NoError(t, err)
		assert.Len(t, slots, 16)
		assert.Equal(t, "09:00", slots[0])
		assert.Equal(t, "16:30", slots[len(slots)-1])
	})

	t.Run("Time Of Day In Date Is Ignored", func(t *testing.T) {
		slots, err := calendar.GenerateSlots(weekdayDoctor(), monday.Add(15*time.Hour+20*time.Minute))
		require.NoError(t, err)
		assert.Len(t, slots, 16)
	})

	t.Run("Closed Day", func(t *testing.T) {
		_, err := calendar.GenerateSlots(weekdayDoctor(), monday.AddDate(0, 0, 5))
		assert.True(t, exceptions.IsKind(err, exceptions.KindClosedDay), "saturday should be closed, got %v", err)
	})

	t.Run("Partial Last Slot Is Dropped", func(t *testing.T) {
		doctor := weekdayDoctor()
		doctor.WorkingHours = models.WorkingHours{Start: "9:00", End: "10:45"}
		slots, err := calendar.GenerateSlots(doctor, monday)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots)
	})

	t.Run("Custom Slot Width", func(t *testing.T) {
		slots, err := NewSlotCalendar(60).GenerateSlots(weekdayDoctor(), monday)
		require.NoError(t, err)
		assert.Len(t, slots, 8)
	})

	t.Run("Non Positive Width Falls Back To Default", func(t *testing.T) {
		assert.Equal(t, constvars.DefaultSlotMinutes, NewSlotCalendar(0).SlotMinutes())
	})

	t.Run("Malformed Working Hours", func(t *testing.T) {
		for _, hours := range []models.WorkingHours{
			{Start: "9am", End: "17:00"},
			{Start: "09:00", End: "25:00"},
			{Start: "17:00", End: "09:00"},
			{Start: "09:00", End: "09:00"},
		} {
			doctor := weekdayDoctor()
			doctor.WorkingHours = hours
			_, err := calendar.GenerateSlots(doctor, monday)
			assert.True(t, exceptions.IsKind(err, exceptions.KindValidation), "%+v should be rejected", hours)
		}
	})

	t.Run("Unknown Day Token", func(t *testing.T) {
		doctor := weekdayDoctor()
		doctor.WorkingDays = append(doctor.WorkingDays, "funday")
		_, err := calendar.GenerateSlots(doctor, monday)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})
}

func TestSlotCalendar_AvailableSlots(t *testing.T) {
	calendar := NewSlotCalendar(constvars.DefaultSlotMinutes)
	doctor := weekdayDoctor()

	booking := func(status models.AppointmentStatus, doctorID primitive.ObjectID, date time.Time, clock string) models.Appointment {
		return models.Appointment{
			ID:       primitive.NewObjectID(),
			DoctorID: doctorID,
			Date:     date,
			Time:     clock,
			Status:   status,
		}
	}

	available, err := calendar.AvailableSlots(doctor, monday, []models.Appointment{
		booking(models.AppointmentStatusScheduled, doctor.ID, monday, "10:00"),
		booking(models.AppointmentStatusCompleted, doctor.ID, monday, "11:00"),
		booking(models.AppointmentStatusCancelled, doctor.ID, monday, "12:00"),
		booking(models.AppointmentStatusNoShow, doctor.ID, monday, "13:00"),
		booking(models.AppointmentStatusScheduled, primitive.NewObjectID(), monday, "14:00"),
		booking(models.AppointmentStatusScheduled, doctor.ID, monday.AddDate(0, 0, 1), "15:00"),
	})
	require.NoError(t, err)

	assert.Len(t, available, 14)
	assert.NotContains(t, available, "10:00")
	assert.NotContains(t, available, "11:00", "completed appointments keep their slot")
	for _, free := range []string{"12:00", "13:00", "14:00", "15:00"} {
		assert.Contains(t, available, free)
	}

	_, err = calendar.AvailableSlots(doctor, monday.AddDate(0, 0, 6), nil)
	assert.True(t, exceptions.IsKind(err, exceptions.KindClosedDay))
}
