package slot

import (
	"fmt"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/utils"
	"strings"
	"time"
)

// weeklyPlanFromDoctor maps the doctor's working days and hours to a weeklyPlan.
// The first malformed entry fails the whole plan.
func weeklyPlanFromDoctor(doctor *models.Doctor) (weeklyPlan, error) {
	start, ok := parseClock(doctor.WorkingHours.Start)
	if !ok {
		return nil, fmt.Errorf("invalid working hours start '%s'", doctor.WorkingHours.Start)
	}
	end, ok := parseClock(doctor.WorkingHours.End)
	if !ok {
		return nil, fmt.Errorf("invalid working hours end '%s'", doctor.WorkingHours.End)
	}
	if !validWindow(start, end) {
		return nil, fmt.Errorf("start >= end (%02d:%02d >= %02d:%02d)", start.H, start.M, end.H, end.M)
	}

	wp := weeklyPlan{}
	for _, tok := range doctor.WorkingDays {
		wd, ok := mapDayToken(tok)
		if !ok {
			return nil, fmt.Errorf("unknown day token '%s'", tok)
		}
		wp[wd] = &dayWindow{Start: start, End: end}
	}
	return wp, nil
}

// parseClock accepts "H:MM" and "HH:MM" 24-hour values.
func parseClock(s string) (clock, bool) {
	minutes, err := utils.ParseClock(s)
	if err != nil {
		return clock{}, false
	}
	return clock{H: minutes / 60, M: minutes % 60}, true
}

func validWindow(a, b clock) bool {
	return a.minutes() < b.minutes()
}

func mapDayToken(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mon", "monday":
		return time.Monday, true
	case "tue", "tues", "tuesday":
		return time.Tuesday, true
	case "wed", "wednesday":
		return time.Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return time.Thursday, true
	case "fri", "friday":
		return time.Friday, true
	case "sat", "saturday":
		return time.Saturday, true
	case "sun", "sunday":
		return time.Sunday, true
	}
	return 0, false
}

// generateSlotsBetween emits back-to-back slots of slotMinutes; a slot never ends after end.
func generateSlotsBetween(start, end time.Time, slotMinutes int) []interval {
	if slotMinutes <= 0 {
		return nil
	}
	lenSlot := time.Duration(slotMinutes) * time.Minute
	var out []interval
	for t := start; ; t = t.Add(lenSlot) {
		if t.Add(lenSlot).After(end) {
			break
		}
		out = append(out, interval{Start: t, End: t.Add(lenSlot)})
	}
	return out
}

func atClock(day time.Time, c clock, loc *time.Location) time.Time {
	d := day.In(loc)
	y, mo, dd := d.Date()
	return time.Date(y, mo, dd, c.H, c.M, 0, 0, loc)
}

func formatSlotStart(iv interval) string {
	return iv.Start.Format(constvars.ClockLayout)
}
