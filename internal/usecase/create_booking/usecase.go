package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	checker      AdmissionChecker
	locker       Locker
	txManager    TransactionManager
	metrics      Metrics
	lockWait     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	checker AdmissionChecker,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	lockWait time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checker:      checker,
		locker:       locker,
		txManager:    txManager,
		metrics:      metrics,
		lockWait:     lockWait,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Решения по одной лаборатории и дате сериализуются блокировкой,
// внутри которой выполняется сериализуемая транзакция.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s role=%s lab=%q date=%s time=%s-%s",
		req.Identity.UserID, req.Identity.Role, req.LabName, req.Date, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата, время и количество мест
	slot, err := admission.ValidateSlot(admission.SlotRequest{
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		SeatsRequired: req.SeatsRequired,
	}, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		uc.record(err)
		return nil, err
	}

	// 3. Блокировка (лаборатория, дата)
	lockCtx, cancel := context.WithTimeout(ctx, uc.lockWait)
	defer cancel()

	unlock, err := uc.locker.Lock(lockCtx, lock.AdmissionKey(req.LabName, slot.Date))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("CreateBooking: lock wait exceeded for lab=%q date=%s", req.LabName, req.Date)
			return nil, ErrBusy
		}
		uc.logger.Error("CreateBooking: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		result   *domain.Booking
		decision *admission.Decision
	)

	// 4. Проверка мест и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		d, err := uc.checker.Check(txCtx, admission.Input{
			LabName: req.LabName,
			Slot:    slot,
			Role:    req.Identity.Role,
		})
		if err != nil {
			return err
		}
		decision = d

		booking := &domain.Booking{
			UserID:        req.Identity.UserID,
			LabName:       d.Lab.Name,
			BookingDate:   slot.Date,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			SeatsRequired: slot.Seats,
			Status:        domain.StatusPending,
			CreatedAt:     now,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.record(err)
	if err != nil {
		if isAdmissionError(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, lab=%q, %d seats, %d free",
		result.ID, result.LabName, result.SeatsRequired, decision.Free)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		LabName:       result.LabName,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		SeatsRequired: result.SeatsRequired,
		Status:        string(result.Status),
		FreeSeats:     decision.Free,
		CreatedAt:     result.CreatedAt,
	}, nil
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}
	result := admission.ResultOf(err)
	if errors.Is(err, ErrInternal) {
		result = admission.ResultInternal
	}
	uc.metrics.RecordAdmission(operation, result)
}

func isAdmissionError(err error) bool {
	for _, target := range []error{
		admission.ErrInvalidDate,
		admission.ErrInvalidTime,
		admission.ErrInvalidSeatCount,
		admission.ErrCapacityExceeded,
		admission.ErrOutsideTemplate,
		admission.ErrInsufficientSeats,
		admission.ErrLabNotFound,
		admission.ErrLabDisabled,
		admission.ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
