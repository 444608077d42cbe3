package utils

import (
	"fmt"
	"time"
)

// All date keys in the system are derived in this one reference
// timezone. Formatting in the viewer's local zone (or UTC) shifts
// entries across midnight for users elsewhere, so every key producer
// goes through these helpers.
const ReferenceTimezone = "America/Mexico_City"

var planLocation = loadPlanLocation()

func loadPlanLocation() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		// tzdata missing from the host; keep the same UTC offset so keys
		// stay stable rather than silently falling back to UTC.
		return time.FixedZone("CST", -6*60*60)
	}
	return loc
}

const dateKeyLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD in the reference timezone.
func DateKey(t time.Time) string {
	return t.In(planLocation).Format(dateKeyLayout)
}

// TodayKey is the date key of the current instant.
func TodayKey() string {
	return DateKey(time.Now())
}

// ParseDateKey validates and parses a YYYY-MM-DD key in the reference
// timezone.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, planLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// WeekStart returns midnight of the Monday of t's week in the reference
// timezone. AddDate handles month/year boundaries safely.
func WeekStart(t time.Time) time.Time {
	tt := t.In(planLocation)
	weekday := int(tt.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the prior Monday
	}
	day := tt.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, planLocation)
}

// WeekKeys returns the 7 date keys, Monday through Sunday, of the week
// containing t.
func WeekKeys(t time.Time) []string {
	start := WeekStart(t)
	keys := make([]string, 7)
	for i := 0; i < 7; i++ {
		keys[i] = DateKey(start.AddDate(0, 0, i))
	}
	return keys
}

// WeekKey is the date key of the Monday of t's week, used to key weekly
// weight entries.
func WeekKey(t time.Time) string {
	return DateKey(WeekStart(t))
}

// CalculateAge returns full years elapsed since birthday.
func CalculateAge(birthday time.Time) int {
	now := time.Now().In(planLocation)
	age := now.Year() - birthday.Year()
	if now.Before(birthday.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
