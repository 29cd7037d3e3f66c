package slot

import "time"

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

func (c clock) minutes() int {
	return c.H*60 + c.M
}

// dayWindow defines an inclusive start and exclusive end wall-clock window for a single day.
type dayWindow struct {
	Start clock
	End   clock
}

// weeklyPlan holds the working window per weekday; a nil entry is a closed day.
type weeklyPlan map[time.Weekday]*dayWindow

func (wp weeklyPlan) forWeekday(wd time.Weekday) (dayWindow, bool) {
	w, ok := wp[wd]
	if !ok || w == nil {
		return dayWindow{}, false
	}
	return *w, true
}

// interval is a concrete timestamped slot instance.
type interval struct {
	Start time.Time
	End   time.Time
}
