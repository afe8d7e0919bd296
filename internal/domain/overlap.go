package domain

import "github.com/m04kA/SMC-LabBookingService/pkg/types"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching ranges do not overlap. Any malformed bound yields false.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	as, ok1 := aStart.Minutes()
	ae, ok2 := aEnd.Minutes()
	bs, ok3 := bStart.Minutes()
	be, ok4 := bEnd.Minutes()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return OverlapsMinutes(as, ae, bs, be)
}

// OverlapsMinutes is Overlaps on minute offsets
func OverlapsMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
