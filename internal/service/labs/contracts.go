package labs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// LabRepository интерфейс репозитория лабораторий
type LabRepository interface {
	Create(ctx context.Context, lab *domain.Lab) (*domain.Lab, error)
	GetByID(ctx context.Context, id int64) (*domain.Lab, error)
	List(ctx context.Context) ([]*domain.Lab, error)
	Update(ctx context.Context, lab *domain.Lab) error
	Delete(ctx context.Context, id int64) error

	GetWindows(ctx context.Context, labID int64, weekday domain.Weekday) ([]domain.AvailabilityWindow, error)
	AddWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, labID, windowID int64) error

	Disable(ctx context.Context, disabled *domain.DisabledLab) error
	Enable(ctx context.Context, labID int64, date time.Time) error

	AssignAssistant(ctx context.Context, assignment *domain.LabAssistantAssignment) error
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
