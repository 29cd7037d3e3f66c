package utils

import (
	"fmt"
	"hospital-service/internal/pkg/constvars"
	"strconv"
	"strings"
	"time"
)

// ParseCalendarDate returns midnight of the given YYYY-MM-DD in the app timezone.
func ParseCalendarDate(value string) (time.Time, error) {
	return time.ParseInLocation(constvars.DateLayout, strings.TrimSpace(value), time.Local)
}

// DayBounds returns [start, end) of the calendar day containing t, as two independent values.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)
	return start, end
}

// ParseClock accepts "H:MM" or "HH:MM" and returns minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	return hour*60 + minute, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock rewrites "9:00" as "09:00".
func NormalizeClock(value string) (string, error) {
	minutes, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

func FormatCalendarDate(t time.Time) string {
	return t.In(time.Local).Format(constvars.DateLayout)
}
