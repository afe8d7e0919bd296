package get_lab_occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// LabRepository интерфейс репозитория лабораторий
type LabRepository interface {
	List(ctx context.Context) ([]*domain.Lab, error)
	GetByName(ctx context.Context, name string) (*domain.Lab, error)
	GetWindowsByWeekday(ctx context.Context, weekday domain.Weekday) (map[int64][]domain.AvailabilityWindow, error)
	GetDisabledByDate(ctx context.Context, date time.Time) (map[int64]*domain.DisabledLab, error)
	AssignedLabIDs(ctx context.Context, assistantID string) ([]int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDate возвращает бронирования всех лабораторий на дату в любом статусе
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
