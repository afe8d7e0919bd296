package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// Weekday day of week as stored in availability templates
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays all weekdays, Monday first
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid reports whether the weekday is one of the seven known names
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// WeekdayOf returns the weekday of a "YYYY-MM-DD" date.
// Dates that do not exist on the calendar are rejected.
func WeekdayOf(date string) (Weekday, error) {
	t, err := types.ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("weekday of %q: %w", date, err)
	}
	return WeekdayOfTime(t), nil
}

// WeekdayOfTime returns the weekday of t
func WeekdayOfTime(t time.Time) Weekday {
	// time.Weekday начинается с воскресенья
	return Weekdays[(int(t.Weekday())+6)%7]
}
