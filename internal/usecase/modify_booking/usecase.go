package modify_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/booking"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

const operation = "modify"

// UseCase use case изменения бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	labRepo      LabRepository
	checker      AdmissionChecker
	locker       Locker
	txManager    TransactionManager
	metrics      Metrics
	lockWait     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	labRepo LabRepository,
	checker AdmissionChecker,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	lockWait time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		labRepo:      labRepo,
		checker:      checker,
		locker:       locker,
		txManager:    txManager,
		metrics:      metrics,
		lockWait:     lockWait,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute меняет лабораторию, дату, время или количество мест бронирования.
// Само бронирование не учитывается при подсчёте занятых мест.
// После изменения статус снова становится pending.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyBooking: booking=%d user=%s role=%s", req.BookingID, req.Identity.UserID, req.Identity.Role)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	// 1. Текущее состояние нужно, чтобы заполнить пропущенные поля и выбрать ключ блокировки
	current, err := uc.load(ctx, req)
	if err != nil {
		return nil, err
	}

	labName := req.LabName
	if labName == "" {
		labName = current.LabName
	}
	date := req.Date
	if date == "" {
		date = types.FormatDate(current.BookingDate)
	}
	seats := req.SeatsRequired
	if seats == nil {
		seats = ptr.Ptr(current.Seats())
	}

	now := uc.timeProvider.Now()

	slot, err := admission.ValidateSlot(admission.SlotRequest{
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		SeatsRequired: seats,
	}, now)
	if err != nil {
		uc.logger.Warn("ModifyBooking: slot validation failed: %v", err)
		uc.record(err)
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, uc.lockWait)
	defer cancel()

	unlock, err := uc.locker.Lock(lockCtx, lock.AdmissionKey(labName, slot.Date))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("ModifyBooking: lock wait exceeded for lab=%q date=%s", labName, date)
			return nil, ErrBusy
		}
		uc.logger.Error("ModifyBooking: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		updated  *domain.Booking
		decision *admission.Decision
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем под блокировкой: статус мог измениться
		booking, err := uc.load(txCtx, req)
		if err != nil {
			return err
		}

		d, err := uc.checker.Check(txCtx, admission.Input{
			LabName:          labName,
			Slot:             slot,
			Role:             req.Identity.Role,
			ExcludeBookingID: booking.ID,
		})
		if err != nil {
			return err
		}
		decision = d

		booking.LabName = d.Lab.Name
		booking.BookingDate = slot.Date
		booking.StartTime = slot.StartTime
		booking.EndTime = slot.EndTime
		booking.SeatsRequired = slot.Seats
		booking.Status = domain.StatusPending
		booking.UpdatedAt = &now

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("ModifyBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		updated = booking
		return nil
	})

	uc.record(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ModifyBooking: booking id=%d moved to lab=%q %s %s, status reset to pending",
		updated.ID, updated.LabName, types.FormatDate(updated.BookingDate),
		domain.FormatSlot(updated.StartTime, updated.EndTime))

	return &Response{
		ID:            updated.ID,
		UserID:        updated.UserID,
		LabName:       updated.LabName,
		BookingDate:   updated.BookingDate,
		StartTime:     updated.StartTime,
		EndTime:       updated.EndTime,
		SeatsRequired: updated.SeatsRequired,
		Status:        string(updated.Status),
		FreeSeats:     decision.Free,
		UpdatedAt:     now,
	}, nil
}

// load получает бронирование и проверяет право его менять
func (uc *UseCase) load(ctx context.Context, req *Request) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ModifyBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ModifyBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if err := uc.checkAccess(ctx, booking, req.Identity); err != nil {
		return nil, err
	}

	if !booking.CanBeModified() {
		uc.logger.Warn("ModifyBooking: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, ErrAlreadyProcessed
	}

	return booking, nil
}

// checkAccess пропускает владельца, администратора и лаборанта, назначенного на лабораторию бронирования
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, who domain.Identity) error {
	if booking.UserID == who.UserID || who.Role.IsAdmin() {
		return nil
	}
	if who.Role != domain.RoleLabAssistant {
		uc.logger.Warn("ModifyBooking: user=%s is not the owner of booking id=%d", who.UserID, booking.ID)
		return ErrAccessDenied
	}

	lab, err := uc.labRepo.GetByName(ctx, booking.LabName)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			uc.logger.Warn("ModifyBooking: lab %q of booking id=%d no longer exists", booking.LabName, booking.ID)
			return ErrAccessDenied
		}
		uc.logger.Error("ModifyBooking: failed to get lab %q: %v", booking.LabName, err)
		return fmt.Errorf("%w: failed to get lab: %v", ErrInternal, err)
	}

	assigned, err := uc.labRepo.IsAssigned(ctx, lab.ID, who.UserID)
	if err != nil {
		uc.logger.Error("ModifyBooking: failed to check assignment of %s to lab id=%d: %v", who.UserID, lab.ID, err)
		return fmt.Errorf("%w: failed to check assignment: %v", ErrInternal, err)
	}
	if !assigned {
		uc.logger.Warn("ModifyBooking: lab assistant %s is not assigned to lab %q", who.UserID, lab.Name)
		return ErrAccessDenied
	}
	return nil
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
