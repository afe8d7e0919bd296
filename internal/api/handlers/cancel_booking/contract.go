package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

type BookingService interface {
	Delete(ctx context.Context, id int64, who domain.Identity) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
