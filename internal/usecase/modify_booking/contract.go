package modify_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// LabRepository интерфейс репозитория лабораторий для проверки назначения лаборанта
type LabRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Lab, error)
	IsAssigned(ctx context.Context, labID int64, assistantID string) (bool, error)
}

// AdmissionChecker проверка свободных мест
type AdmissionChecker interface {
	Check(ctx context.Context, in admission.Input) (*admission.Decision, error)
}

// Locker блокировка по ключу (лаборатория, дата)
type Locker interface {
	Lock(ctx context.Context, key string) (lock.Unlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для записи результатов проверки мест
type Metrics interface {
	RecordAdmission(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
