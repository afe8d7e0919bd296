package get_lab_occupancy

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// labInput данные одной лаборатории, собранные из хранилища
type labInput struct {
	lab      *domain.Lab
	windows  []domain.AvailabilityWindow
	bookings []*domain.Booking // все статусы
	disabled *domain.DisabledLab
}

// buildLab строит представление лаборатории. Второй результат false
// означает, что лабораторию не нужно показывать в этом представлении.
func buildLab(in labInput, view View) (LabOccupancy, bool) {
	if view == ViewPublic {
		if in.disabled != nil || len(in.windows) == 0 {
			return LabOccupancy{}, false
		}
	}

	occupancy := domain.ComputeOccupancy(in.lab.Capacity, in.windows, in.bookings)

	result := LabOccupancy{
		Lab:     in.lab,
		Slots:   make([]SlotOccupancy, 0, len(occupancy)),
		Summary: summarize(in.lab.Capacity, occupancy),
	}

	for _, occ := range occupancy {
		if view == ViewPublic && occ.Free <= 0 {
			continue
		}

		slot := SlotOccupancy{
			Slot:      occ.Window.Slot(),
			StartTime: occ.Window.StartTime,
			EndTime:   occ.Window.EndTime,
			Capacity:  in.lab.Capacity,
			Booked:    occ.Occupied,
			Available: occ.Free,
			Label:     freeLabel(occ.Free, in.lab.Capacity),
		}
		if view != ViewPublic {
			slot.Bookings = occ.Bookings
		}
		result.Slots = append(result.Slots, slot)
	}

	if view == ViewPublic {
		return result, true
	}

	result.Bookings = in.bookings
	if result.Bookings == nil {
		result.Bookings = make([]*domain.Booking, 0)
	}

	if view == ViewAdmin {
		result.Disabled = in.disabled != nil
		result.Status = domain.LabStatusActive
		result.StatusBadge = domain.BadgeActive
		if result.Disabled {
			result.DisabledReason = in.disabled.Reason
			result.Status = domain.LabStatusDisabled
			result.StatusBadge = domain.BadgeDisabled
		}
	}

	return result, true
}

// summarize считает сводку лаборатории по всем окнам, включая заполненные
func summarize(capacity int, occupancy []domain.WindowOccupancy) Summary {
	s := Summary{TotalSlots: len(occupancy)}
	for _, occ := range occupancy {
		s.Booked += occ.Occupied
	}
	s.TotalCapacity = s.TotalSlots * capacity
	s.Free = s.TotalCapacity - s.Booked
	s.Label = freeLabel(s.Free, s.TotalCapacity)
	return s
}

func freeLabel(free, total int) string {
	return fmt.Sprintf("%d/%d free", free, total)
}

// groupByLab группирует бронирования по названию лаборатории
func groupByLab(bookings []*domain.Booking) map[string][]*domain.Booking {
	result := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		result[b.LabName] = append(result[b.LabName], b)
	}
	return result
}

func sortLabs(labs []LabOccupancy) {
	sort.SliceStable(labs, func(i, j int) bool {
		return labs[i].Lab.Name < labs[j].Lab.Name
	})
}
