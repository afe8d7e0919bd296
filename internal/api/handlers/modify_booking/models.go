package modify_booking

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	modifyBooking "github.com/m04kA/SMC-LabBookingService/internal/usecase/modify_booking"
)

// ModifyBookingRequest HTTP request model.
// Пропущенные lab_name, booking_date и seats_required остаются прежними.
type ModifyBookingRequest struct {
	LabName       string `json:"lab_name,omitempty" validate:"max=100"`
	BookingDate   string `json:"booking_date,omitempty"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	SeatsRequired *int   `json:"seats_required,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	CollegeID     string `json:"college_id"`
	LabName       string `json:"lab_name"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	SeatsRequired int    `json:"seats_required"`
	Status        string `json:"status"`
	FreeSeats     int    `json:"free_seats"`
	UpdatedAt     string `json:"updated_at"`
}

func (r *ModifyBookingRequest) ToUseCaseRequest(identity domain.Identity, bookingID int64) *modifyBooking.Request {
	return &modifyBooking.Request{
		Identity:      identity,
		BookingID:     bookingID,
		LabName:       r.LabName,
		Date:          r.BookingDate,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		SeatsRequired: r.SeatsRequired,
	}
}

func FromUseCaseResponse(resp *modifyBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		CollegeID:     resp.UserID,
		LabName:       resp.LabName,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		SeatsRequired: resp.SeatsRequired,
		Status:        resp.Status,
		FreeSeats:     resp.FreeSeats,
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
