package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/booking"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
	"github.com/m04kA/SMC-LabBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: решения, отмена, история
type Service struct {
	bookingRepo  BookingRepository
	labRepo      LabRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	labRepo LabRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		labRepo:      labRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Видно владельцу, администратору и лаборанту этой лаборатории.
func (s *Service) GetByID(ctx context.Context, id int64, who domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, who.UserID)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != who.UserID {
		if err := s.checkLabAccess(ctx, "GetByID", booking, who); err != nil {
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// ListMine получает все бронирования вызывающего, новые сверху
func (s *Service) ListMine(ctx context.Context, who domain.Identity) (*models.BookingListResponse, error) {
	s.logger.Info("ListMine: fetching bookings for user=%s", who.UserID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, who.UserID)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", who.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: fetched %d bookings for user=%s", len(bookings), who.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Decide одобряет или отклоняет бронирование в статусе pending.
// Доступно администратору и лаборанту, назначенному на лабораторию.
func (s *Service) Decide(ctx context.Context, id int64, who domain.Identity, req *models.DecisionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Decide: booking id=%d decision=%s by user=%s", id, req.Decision, who.UserID)

	status, err := models.ToDecisionStatus(req.Decision)
	if err != nil {
		s.logger.Warn("Decide: invalid decision %q", req.Decision)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !who.Role.IsPrivileged() {
		s.logger.Warn("Decide: user=%s with role=%s cannot decide bookings", who.UserID, who.Role)
		return nil, ErrAccessDenied
	}

	booking, err := s.transition(ctx, "Decide", id, who, status, func(b *domain.Booking) bool {
		return b.CanBeDecided()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Decide: booking id=%d is now %s", id, status)
	return models.FromDomainBooking(booking), nil
}

// Override отменяет активное бронирование, строка остаётся со статусом cancelled.
// Доступно администратору и лаборанту, назначенному на лабораторию.
func (s *Service) Override(ctx context.Context, id int64, who domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("Override: booking id=%d by user=%s", id, who.UserID)

	if !who.Role.IsPrivileged() {
		s.logger.Warn("Override: user=%s with role=%s cannot override bookings", who.UserID, who.Role)
		return nil, ErrAccessDenied
	}

	booking, err := s.transition(ctx, "Override", id, who, domain.StatusCancelled, func(b *domain.Booking) bool {
		return b.IsActive()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Override: booking id=%d cancelled", id)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет активное бронирование. Удалить может только владелец.
func (s *Service) Delete(ctx context.Context, id int64, who domain.Identity) error {
	s.logger.Info("Delete: booking id=%d by user=%s", id, who.UserID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if booking.UserID != who.UserID {
			s.logger.Warn("Delete: user=%s is not the owner of booking id=%d", who.UserID, id)
			return ErrAccessDenied
		}

		if !booking.IsActive() {
			s.logger.Warn("Delete: booking id=%d has status %s", id, booking.Status)
			return ErrAlreadyProcessed
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: booking id=%d deleted", id)
		return nil
	})
}

// transition меняет статус бронирования под блокировкой строки
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	who domain.Identity,
	status domain.BookingStatus,
	allowed func(*domain.Booking) bool,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, op, id)
		if err != nil {
			return err
		}

		if err := s.checkLabAccess(txCtx, op, booking, who); err != nil {
			return err
		}

		if !allowed(booking) {
			s.logger.Warn("%s: booking id=%d has status %s", op, id, booking.Status)
			return ErrAlreadyProcessed
		}

		now := s.timeProvider.Now()
		if err := s.bookingRepo.UpdateStatus(txCtx, id, status, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		booking.Status = status
		booking.UpdatedAt = &now
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBookingDecision(string(status))
	}
	return result, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkLabAccess пускает администратора и лаборанта, назначенного на лабораторию бронирования
func (s *Service) checkLabAccess(ctx context.Context, op string, booking *domain.Booking, who domain.Identity) error {
	if who.Role.IsAdmin() {
		return nil
	}
	if who.Role != domain.RoleLabAssistant {
		s.logger.Warn("%s: access denied for user=%s to booking id=%d", op, who.UserID, booking.ID)
		return ErrAccessDenied
	}

	lab, err := s.labRepo.GetByName(ctx, booking.LabName)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			s.logger.Warn("%s: lab %q of booking id=%d no longer exists", op, booking.LabName, booking.ID)
			return ErrAccessDenied
		}
		s.logger.Error("%s: failed to get lab %q: %v", op, booking.LabName, err)
		return fmt.Errorf("%w: %s - lab repository error: %v", ErrInternal, op, err)
	}

	assigned, err := s.labRepo.IsAssigned(ctx, lab.ID, who.UserID)
	if err != nil {
		s.logger.Error("%s: failed to check assignment of %s to lab id=%d: %v", op, who.UserID, lab.ID, err)
		return fmt.Errorf("%w: %s - lab repository error: %v", ErrInternal, op, err)
	}
	if !assigned {
		s.logger.Warn("%s: lab assistant %s is not assigned to lab %q", op, who.UserID, lab.Name)
		return ErrAccessDenied
	}
	return nil
}
