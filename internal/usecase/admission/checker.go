package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
)

// Checker проверяет, можно ли выделить места в интервале лаборатории
type Checker struct {
	labRepo     LabRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewChecker создает проверку мест
func NewChecker(labRepo LabRepository, bookingRepo BookingRepository, logger Logger) *Checker {
	return &Checker{
		labRepo:     labRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Input данные для проверки
type Input struct {
	LabName          string
	Slot             *Slot
	Role             domain.Role
	ExcludeBookingID int64 // не учитывается в сумме мест (изменяемое бронирование)
}

// Decision результат успешной проверки
type Decision struct {
	Lab      *domain.Lab
	Occupied int // места, занятые другими бронированиями
	Free     int // свободно после размещения запроса
}

// Check выполняет проверки в порядке: вместимость, отключение, шаблон, свободные места.
// Вызывать внутри транзакции, чтобы чтение бронирований шло с блокировкой строк.
func (c *Checker) Check(ctx context.Context, in Input) (*Decision, error) {
	lab, err := c.labRepo.GetByName(ctx, in.LabName)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			c.logger.Warn("Admission: lab %q not found", in.LabName)
			return nil, ErrLabNotFound
		}
		c.logger.Error("Admission: failed to get lab %q: %v", in.LabName, err)
		return nil, fmt.Errorf("%w: failed to get lab: %v", ErrInternal, err)
	}

	if in.Slot.Seats > lab.Capacity {
		c.logger.Warn("Admission: %d seats exceed capacity %d of lab %q", in.Slot.Seats, lab.Capacity, lab.Name)
		return nil, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, in.Slot.Seats, lab.Capacity)
	}

	if !in.Role.IsAdmin() {
		if err := c.checkEnabled(ctx, lab, in); err != nil {
			return nil, err
		}
		if err := c.checkTemplate(ctx, lab, in); err != nil {
			return nil, err
		}
	}

	bookings, err := c.bookingRepo.GetActiveByLabAndDate(ctx, lab.Name, in.Slot.Date)
	if err != nil {
		c.logger.Error("Admission: failed to get bookings for lab %q: %v", lab.Name, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := domain.OccupiedSeats(bookings, in.Slot.StartTime, in.Slot.EndTime, in.ExcludeBookingID)
	if occupied+in.Slot.Seats > lab.Capacity {
		c.logger.Warn("Admission: lab %q %s %s: %d occupied + %d requested > capacity %d",
			lab.Name, in.Slot.Date.Format(domain.DateFormat), domain.FormatSlot(in.Slot.StartTime, in.Slot.EndTime),
			occupied, in.Slot.Seats, lab.Capacity)
		return nil, fmt.Errorf("%w: %d of %d seats free", ErrInsufficientSeats, lab.Capacity-occupied, lab.Capacity)
	}

	return &Decision{
		Lab:      lab,
		Occupied: occupied,
		Free:     lab.Capacity - occupied - in.Slot.Seats,
	}, nil
}

func (c *Checker) checkEnabled(ctx context.Context, lab *domain.Lab, in Input) error {
	disabled, err := c.labRepo.GetDisabled(ctx, lab.ID, in.Slot.Date)
	if err != nil && !errors.Is(err, labRepo.ErrDisabledNotFound) {
		c.logger.Error("Admission: failed to get disabled state of lab %q: %v", lab.Name, err)
		return fmt.Errorf("%w: failed to get disabled state: %v", ErrInternal, err)
	}
	if disabled != nil {
		c.logger.Warn("Admission: lab %q is disabled on %s", lab.Name, in.Slot.Date.Format(domain.DateFormat))
		return ErrLabDisabled
	}
	return nil
}

func (c *Checker) checkTemplate(ctx context.Context, lab *domain.Lab, in Input) error {
	windows, err := c.labRepo.GetWindows(ctx, lab.ID, in.Slot.Weekday)
	if err != nil {
		c.logger.Error("Admission: failed to get windows of lab %q: %v", lab.Name, err)
		return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	for _, w := range windows {
		if w.Matches(in.Slot.StartTime, in.Slot.EndTime) {
			return nil
		}
	}

	c.logger.Warn("Admission: %s is not an available time slot of lab %q on %s",
		domain.FormatSlot(in.Slot.StartTime, in.Slot.EndTime), lab.Name, in.Slot.Weekday)
	return ErrOutsideTemplate
}
