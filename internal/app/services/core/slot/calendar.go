package slot

import (
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"time"
)

type slotCalendar struct {
	slotMinutes int
	loc         *time.Location
}

// NewSlotCalendar builds a calendar producing slotMinutes-wide slots in the app timezone.
func NewSlotCalendar(slotMinutes int) contracts.SlotCalendar {
	if slotMinutes <= 0 {
		slotMinutes = constvars.DefaultSlotMinutes
	}
	return &slotCalendar{
		slotMinutes: slotMinutes,
		loc:         time.Local,
	}
}

func (c *slotCalendar) SlotMinutes() int {
	return c.slotMinutes
}

// GenerateSlots returns the ordered slot start times for the doctor on the calendar day of date.
func (c *slotCalendar) GenerateSlots(doctor *models.Doctor, date time.Time) ([]string, error) {
	intervals, err := c.dayIntervals(doctor, date)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		slots = append(slots, formatSlotStart(iv))
	}
	return slots, nil
}

// AvailableSlots removes every time held by an active booking of the same doctor on the same day.
func (c *slotCalendar) AvailableSlots(doctor *models.Doctor, date time.Time, activeBookings []models.Appointment) ([]string, error) {
	generated, err := c.GenerateSlots(doctor, date)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := utils.DayBounds(date)
	held := make(map[string]struct{}, len(activeBookings))
	for _, booking := range activeBookings {
		if !booking.Status.IsActive() || booking.DoctorID != doctor.ID {
			continue
		}
		if booking.Date.Before(dayStart) || !booking.Date.Before(dayEnd) {
			continue
		}
		held[booking.Time] = struct{}{}
	}

	available := make([]string, 0, len(generated))
	for _, slot := range generated {
		if _, taken := held[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available, nil
}

func (c *slotCalendar) dayIntervals(doctor *models.Doctor, date time.Time) ([]interval, error) {
	plan, err := weeklyPlanFromDoctor(doctor)
	if err != nil {
		return nil, exceptions.ErrDoctorWorkingHoursInvalid(err, doctor.ID.Hex())
	}

	day := date.In(c.loc)
	window, open := plan.forWeekday(day.Weekday())
	if !open {
		return nil, exceptions.ErrClosedDay(doctor.ID.Hex(), day.Weekday().String())
	}

	return generateSlotsBetween(atClock(day, window.Start, c.loc), atClock(day, window.End, c.loc), c.slotMinutes), nil
}
