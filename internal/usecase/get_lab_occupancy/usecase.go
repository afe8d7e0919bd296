package get_lab_occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// UseCase use case для получения загрузки лабораторий на дату
type UseCase struct {
	labRepo      LabRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	labRepo LabRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		labRepo:      labRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения загрузки.
// Чтение идёт без блокировок: результат может устареть к моменту бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetLabOccupancy: user=%s role=%s date=%q lab=%q assigned=%t",
		req.Identity.UserID, req.Identity.Role, req.Date, req.LabName, req.AssignedOnly)

	// 1. Представление определяется ролью
	view, err := resolveView(req)
	if err != nil {
		uc.logger.Warn("GetLabOccupancy: %v", err)
		return nil, err
	}

	// 2. Дата и день недели
	date, err := resolveDate(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetLabOccupancy: date validation failed: %v", err)
		return nil, err
	}
	weekday := domain.WeekdayOfTime(date)

	// 3. Лаборатории, которые может видеть вызывающий
	labs, err := uc.loadLabs(ctx, req, view)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:    date,
		Weekday: weekday,
		View:    view,
		Labs:    make([]LabOccupancy, 0, len(labs)),
	}
	if len(labs) == 0 {
		return response, nil
	}

	// 4. Окна, отключения и бронирования на дату одним запросом каждое
	windows, err := uc.labRepo.GetWindowsByWeekday(ctx, weekday)
	if err != nil {
		uc.logger.Error("GetLabOccupancy: failed to get windows for %s: %v", weekday, err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	disabled, err := uc.labRepo.GetDisabledByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetLabOccupancy: failed to get disabled labs: %v", err)
		return nil, fmt.Errorf("%w: failed to get disabled labs: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetLabOccupancy: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	byLab := groupByLab(bookings)

	// 5. Сборка представления
	for _, lab := range labs {
		occupancy, ok := buildLab(labInput{
			lab:      lab,
			windows:  windows[lab.ID],
			bookings: byLab[lab.Name],
			disabled: disabled[lab.ID],
		}, view)
		if ok {
			response.Labs = append(response.Labs, occupancy)
		}
	}
	sortLabs(response.Labs)

	uc.logger.Info("GetLabOccupancy: %s view with %d labs for %s",
		view, len(response.Labs), types.FormatDate(date))

	return response, nil
}

func (uc *UseCase) loadLabs(ctx context.Context, req *Request, view View) ([]*domain.Lab, error) {
	var labs []*domain.Lab

	if req.LabName != "" {
		lab, err := uc.labRepo.GetByName(ctx, req.LabName)
		if err != nil {
			if errors.Is(err, labRepo.ErrLabNotFound) {
				uc.logger.Warn("GetLabOccupancy: lab %q not found", req.LabName)
				return nil, ErrLabNotFound
			}
			uc.logger.Error("GetLabOccupancy: failed to get lab %q: %v", req.LabName, err)
			return nil, fmt.Errorf("%w: failed to get lab: %v", ErrInternal, err)
		}
		labs = []*domain.Lab{lab}
	} else {
		all, err := uc.labRepo.List(ctx)
		if err != nil {
			uc.logger.Error("GetLabOccupancy: failed to list labs: %v", err)
			return nil, fmt.Errorf("%w: failed to list labs: %v", ErrInternal, err)
		}
		labs = all
	}

	if view != ViewAssistant {
		return labs, nil
	}

	ids, err := uc.labRepo.AssignedLabIDs(ctx, req.Identity.UserID)
	if err != nil {
		uc.logger.Error("GetLabOccupancy: failed to get assigned labs of %s: %v", req.Identity.UserID, err)
		return nil, fmt.Errorf("%w: failed to get assigned labs: %v", ErrInternal, err)
	}
	assigned := make(map[int64]bool, len(ids))
	for _, id := range ids {
		assigned[id] = true
	}

	result := make([]*domain.Lab, 0, len(ids))
	for _, lab := range labs {
		if assigned[lab.ID] {
			result = append(result, lab)
		}
	}

	if req.LabName != "" && len(result) == 0 {
		uc.logger.Warn("GetLabOccupancy: lab %q is not assigned to %s", req.LabName, req.Identity.UserID)
		return nil, fmt.Errorf("%w: lab is not assigned to the caller", ErrAccessDenied)
	}

	return result, nil
}
