package get_lab_occupancy

import (
	bookingModels "github.com/m04kA/SMC-LabBookingService/internal/service/bookings/models"
	getLabOccupancy "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_lab_occupancy"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	Date    string         `json:"date"`
	Weekday string         `json:"weekday"`
	View    string         `json:"view"`
	Labs    []LabOccupancy `json:"labs"`
}

type LabOccupancy struct {
	ID        int64           `json:"id"`
	LabName   string          `json:"lab_name"`
	Capacity  int             `json:"capacity"`
	Equipment []string        `json:"equipment"`
	Slots     []SlotOccupancy `json:"slots"`
	Summary   Summary         `json:"summary"`

	Bookings       []bookingModels.BookingResponse `json:"bookings,omitempty"`
	Disabled       bool                            `json:"disabled,omitempty"`
	DisabledReason *string                         `json:"disabled_reason,omitempty"`
	Status         string                          `json:"status,omitempty"`
	StatusBadge    string                          `json:"status_badge,omitempty"`
}

type SlotOccupancy struct {
	Slot      string `json:"slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Booked    *int   `json:"booked,omitempty"`
	Available int    `json:"available"`
	Label     string `json:"label"`

	Bookings []bookingModels.BookingResponse `json:"bookings,omitempty"`
}

type Summary struct {
	TotalSlots    int    `json:"total_slots"`
	Booked        *int   `json:"booked,omitempty"`
	TotalCapacity int    `json:"total_capacity"`
	Free          int    `json:"free"`
	Label         string `json:"label"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// В публичном виде остаются только свободные места: booked и списки бронирований не заполняются.
func FromUseCaseResponse(resp *getLabOccupancy.Response) *OccupancyResponse {
	privileged := resp.View != getLabOccupancy.ViewPublic

	labs := make([]LabOccupancy, 0, len(resp.Labs))
	for _, lab := range resp.Labs {
		slots := make([]SlotOccupancy, 0, len(lab.Slots))
		for _, s := range lab.Slots {
			slot := SlotOccupancy{
				Slot:      s.Slot,
				StartTime: s.StartTime.String(),
				EndTime:   s.EndTime.String(),
				Capacity:  s.Capacity,
				Available: s.Available,
				Label:     s.Label,
			}
			if privileged {
				slot.Booked = ptr.Ptr(s.Booked)
				slot.Bookings = bookingModels.FromDomainBookingList(s.Bookings).Bookings
			}
			slots = append(slots, slot)
		}

		equipment := lab.Lab.Equipment
		if equipment == nil {
			equipment = []string{}
		}

		out := LabOccupancy{
			ID:        lab.Lab.ID,
			LabName:   lab.Lab.Name,
			Capacity:  lab.Lab.Capacity,
			Equipment: equipment,
			Slots:     slots,
			Summary: Summary{
				TotalSlots:    lab.Summary.TotalSlots,
				TotalCapacity: lab.Summary.TotalCapacity,
				Free:          lab.Summary.Free,
				Label:         lab.Summary.Label,
			},
			Disabled:       lab.Disabled,
			DisabledReason: lab.DisabledReason,
			Status:         lab.Status,
			StatusBadge:    lab.StatusBadge,
		}
		if privileged {
			out.Summary.Booked = ptr.Ptr(lab.Summary.Booked)
			out.Bookings = bookingModels.FromDomainBookingList(lab.Bookings).Bookings
		}
		labs = append(labs, out)
	}

	return &OccupancyResponse{
		Date:    types.FormatDate(resp.Date),
		Weekday: string(resp.Weekday),
		View:    string(resp.View),
		Labs:    labs,
	}
}
