package domain

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// BookingStatus represents the status of a lab booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// ActiveStatuses статусы, которые занимают места в лаборатории
var ActiveStatuses = []BookingStatus{StatusPending, StatusApproved}

// Booking represents a seat reservation in a lab
type Booking struct {
	ID            int64
	UserID        string // college_id пользователя
	LabName       string // лаборатория хранится по имени
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SeatsRequired int
	Status        BookingStatus

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if the booking occupies seats
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeDecided returns true if the booking still awaits approval or rejection
func (b *Booking) CanBeDecided() bool {
	return b.Status == StatusPending
}

// CanBeModified returns true if the owner may still change or delete the booking
func (b *Booking) CanBeModified() bool {
	return b.IsActive()
}

// Seats returns the number of seats the booking holds.
// Legacy rows without a seat count hold one seat.
func (b *Booking) Seats() int {
	if b.SeatsRequired <= 0 {
		return DefaultSeatsRequired
	}
	return b.SeatsRequired
}
