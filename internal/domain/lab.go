package domain

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// Lab represents a bookable laboratory
type Lab struct {
	ID        int64
	Name      string
	Capacity  int
	Equipment []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// AvailabilityWindow recurring weekly window when a lab accepts bookings
type AvailabilityWindow struct {
	ID        int64
	LabID     int64
	Weekday   Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Slot returns the window in "HH:MM-HH:MM" form
func (w AvailabilityWindow) Slot() string {
	return FormatSlot(w.StartTime, w.EndTime)
}

// Matches reports whether the window has exactly the given bounds
func (w AvailabilityWindow) Matches(start, end types.TimeString) bool {
	return w.StartTime == start && w.EndTime == end
}

// DisabledLab marks a lab closed for one calendar date
type DisabledLab struct {
	ID        int64
	LabID     int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// LabAssistantAssignment grants an assistant rights over one lab
type LabAssistantAssignment struct {
	ID          int64
	LabID       int64
	AssistantID string
	AssignedAt  time.Time
}

// FormatSlot formats a time range as "HH:MM-HH:MM"
func FormatSlot(start, end types.TimeString) string {
	return start.String() + "-" + end.String()
}
