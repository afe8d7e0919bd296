package modify_booking

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// Request запрос на изменение бронирования.
// Пустые LabName и Date означают "оставить как было".
type Request struct {
	Identity      domain.Identity
	BookingID     int64
	LabName       string
	Date          string
	StartTime     string
	EndTime       string
	SeatsRequired *int // nil оставляет прежнее количество мест
}

// Response изменённое бронирование
type Response struct {
	ID            int64
	UserID        string
	LabName       string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SeatsRequired int
	Status        string
	FreeSeats     int
	UpdatedAt     time.Time
}
