package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want Weekday
	}{
		{date: "2024-01-01", want: Monday},
		{date: "2024-02-29", want: Thursday},
		{date: "2024-03-02", want: Saturday},
		{date: "2024-03-03", want: Sunday},
		{date: "2025-10-14", want: Tuesday},
	}

	for _, tt := range tests {
		got, err := WeekdayOf(tt.date)
		require.NoError(t, err, tt.date)
		assert.Equal(t, tt.want, got, tt.date)
	}
}

func TestWeekdayOf_InvalidDate(t *testing.T) {
	for _, date := range []string{"2024-02-30", "2023-02-29", "2024-1-1", "tomorrow", ""} {
		_, err := WeekdayOf(date)
		assert.ErrorIs(t, err, types.ErrInvalidDateString, date)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd types.TimeString
		want                       bool
	}{
		{"same range", "09:00", "11:00", "09:00", "11:00", true},
		{"partial", "09:00", "11:00", "10:00", "12:00", true},
		{"contained", "09:00", "13:00", "10:00", "11:00", true},
		{"touching end", "09:00", "11:00", "11:00", "13:00", false},
		{"touching start", "11:00", "13:00", "09:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
		{"malformed booking", "9am", "11:00", "09:00", "11:00", false},
		{"malformed window", "09:00", "11:00", "09:00", "25:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "symmetric")
		})
	}
}

func TestOccupiedSeats(t *testing.T) {
	bookings := []*Booking{
		{ID: 1, StartTime: "09:00", EndTime: "11:00", SeatsRequired: 15, Status: StatusApproved},
		{ID: 2, StartTime: "10:00", EndTime: "12:00", SeatsRequired: 3, Status: StatusPending},
		{ID: 3, StartTime: "09:00", EndTime: "11:00", SeatsRequired: 7, Status: StatusRejected},
		{ID: 4, StartTime: "09:00", EndTime: "11:00", SeatsRequired: 4, Status: StatusCancelled},
		{ID: 5, StartTime: "11:00", EndTime: "13:00", SeatsRequired: 9, Status: StatusApproved},
		{ID: 6, StartTime: "09:00", EndTime: "11:00", Status: StatusPending},
	}

	assert.Equal(t, 19, OccupiedSeats(bookings, "09:00", "11:00", 0))
	assert.Equal(t, 4, OccupiedSeats(bookings, "09:00", "11:00", 1))
	assert.Equal(t, 12, OccupiedSeats(bookings, "11:00", "13:00", 0))
	assert.Equal(t, 0, OccupiedSeats(nil, "09:00", "11:00", 0))
}

func TestComputeOccupancy(t *testing.T) {
	windows := []AvailabilityWindow{
		{ID: 2, StartTime: "14:00", EndTime: "16:00"},
		{ID: 1, StartTime: "09:00", EndTime: "11:00"},
	}
	bookings := []*Booking{
		{ID: 1, StartTime: "09:00", EndTime: "11:00", SeatsRequired: 18, Status: StatusApproved},
		{ID: 2, StartTime: "10:30", EndTime: "11:30", SeatsRequired: 5, Status: StatusPending},
		{ID: 3, StartTime: "14:00", EndTime: "16:00", SeatsRequired: 2, Status: StatusRejected},
	}

	got := ComputeOccupancy(20, windows, bookings)

	require.Len(t, got, 2)
	assert.Equal(t, "09:00-11:00", got[0].Window.Slot())
	assert.Equal(t, 23, got[0].Occupied)
	assert.Equal(t, -3, got[0].Free, "free is not clamped")
	assert.Len(t, got[0].Bookings, 2)

	assert.Equal(t, "14:00-16:00", got[1].Window.Slot())
	assert.Equal(t, 0, got[1].Occupied)
	assert.Equal(t, 20, got[1].Free)
	assert.Empty(t, got[1].Bookings)

	assert.Equal(t, types.TimeString("14:00"), windows[0].StartTime, "input is not reordered")
}

func TestComputeOccupancy_MalformedBookingIsNotCounted(t *testing.T) {
	windows := []AvailabilityWindow{{StartTime: "09:00", EndTime: "11:00"}}
	bookings := []*Booking{
		{ID: 1, StartTime: "9:00", EndTime: "11:00", SeatsRequired: 20, Status: StatusApproved},
	}

	got := ComputeOccupancy(20, windows, bookings)

	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Occupied)
	assert.Equal(t, 20, got[0].Free)
}

func TestBookingStatusTransitions(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	approved := &Booking{Status: StatusApproved}
	rejected := &Booking{Status: StatusRejected}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, pending.CanBeDecided())
	assert.False(t, approved.CanBeDecided())
	assert.True(t, approved.CanBeModified())
	assert.False(t, rejected.CanBeModified())
	assert.False(t, cancelled.IsActive())
	assert.False(t, BookingStatus("done").IsValid())
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAdmin.IsPrivileged())
	assert.True(t, RoleLabAssistant.IsPrivileged())
	assert.False(t, RoleFaculty.IsPrivileged())
	assert.False(t, Role("guest").IsValid())

	id := Identity{UserID: "CS101", Role: RoleFaculty}
	assert.True(t, id.HasRole(RoleStudent, RoleFaculty))
	assert.False(t, id.HasRole(RoleAdmin))
}
