package admission

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// LabRepository интерфейс репозитория лабораторий
type LabRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Lab, error)
	GetWindows(ctx context.Context, labID int64, weekday domain.Weekday) ([]domain.AvailabilityWindow, error)
	GetDisabled(ctx context.Context, labID int64, date time.Time) (*domain.DisabledLab, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByLabAndDate(ctx context.Context, labName string, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
