package create_booking

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Identity      domain.Identity // кто бронирует
	LabName       string          // имя лаборатории
	Date          string          // "YYYY-MM-DD"
	StartTime     string          // "HH:MM"
	EndTime       string          // "HH:MM"
	SeatsRequired *int            // nil = одно место
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	UserID        string
	LabName       string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SeatsRequired int
	Status        string
	FreeSeats     int // свободно в интервале после бронирования
	CreatedAt     time.Time
}
