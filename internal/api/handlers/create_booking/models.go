package create_booking

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-LabBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LabName       string `json:"lab_name" validate:"required,max=100"`
	BookingDate   string `json:"booking_date" validate:"required"` // "2025-10-15"
	StartTime     string `json:"start_time" validate:"required"`   // "10:00"
	EndTime       string `json:"end_time" validate:"required"`     // "12:00"
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
	CreatedAt     string `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Разбор даты и времени выполняет проверка мест.
func (r *CreateBookingRequest) ToUseCaseRequest(identity domain.Identity) *createBooking.Request {
	return &createBooking.Request{
		Identity:      identity,
		LabName:       r.LabName,
		Date:          r.BookingDate,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		SeatsRequired: r.SeatsRequired,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
