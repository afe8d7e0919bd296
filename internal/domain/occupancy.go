package domain

import (
	"sort"

	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// WindowOccupancy occupancy of one availability window on a date
type WindowOccupancy struct {
	Window   AvailabilityWindow
	Occupied int
	// Free не ограничивается снизу нулём: отрицательное значение означает переполнение
	Free     int
	Bookings []*Booking
}

// OccupiedSeats sums seats of active bookings overlapping [start, end).
// A booking with ID excludeID is skipped; pass 0 to count all.
func OccupiedSeats(bookings []*Booking, start, end types.TimeString, excludeID int64) int {
	total := 0
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			total += b.Seats()
		}
	}
	return total
}

// ComputeOccupancy returns per-window occupancy sorted by start time
func ComputeOccupancy(capacity int, windows []AvailabilityWindow, bookings []*Booking) []WindowOccupancy {
	sorted := make([]AvailabilityWindow, len(windows))
	copy(sorted, windows)
	SortWindows(sorted)

	result := make([]WindowOccupancy, 0, len(sorted))
	for _, w := range sorted {
		occ := WindowOccupancy{Window: w, Bookings: make([]*Booking, 0)}
		for _, b := range bookings {
			if b == nil || !b.IsActive() {
				continue
			}
			if Overlaps(b.StartTime, b.EndTime, w.StartTime, w.EndTime) {
				occ.Occupied += b.Seats()
				occ.Bookings = append(occ.Bookings, b)
			}
		}
		occ.Free = capacity - occ.Occupied
		result = append(result, occ)
	}
	return result
}

// SortWindows sorts windows in place by start time, then end time
func SortWindows(windows []AvailabilityWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].StartTime != windows[j].StartTime {
			return lessTime(windows[i].StartTime, windows[j].StartTime)
		}
		return lessTime(windows[i].EndTime, windows[j].EndTime)
	})
}

func lessTime(a, b types.TimeString) bool {
	am, okA := a.Minutes()
	bm, okB := b.Minutes()
	if okA && okB {
		return am < bm
	}
	return a < b
}
