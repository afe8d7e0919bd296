package get_lab_occupancy

import (
	"context"

	getLabOccupancy "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_lab_occupancy"
)

type GetLabOccupancyUseCase interface {
	Execute(ctx context.Context, req *getLabOccupancy.Request) (*getLabOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
