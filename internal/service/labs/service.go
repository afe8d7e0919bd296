package labs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
	"github.com/m04kA/SMC-LabBookingService/internal/service/labs/models"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// Service сервис администрирования лабораторий: карточки, шаблон окон,
// отключения на дату и назначение лаборантов
type Service struct {
	labRepo        LabRepository
	maxLabCapacity int
	timeProvider   TimeProvider
	logger         Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// NewService создает новый экземпляр сервиса лабораторий
func NewService(labRepo LabRepository, maxLabCapacity int, logger Logger) *Service {
	if maxLabCapacity <= 0 {
		maxLabCapacity = domain.DefaultMaxLabCapacity
	}
	return &Service{
		labRepo:        labRepo,
		maxLabCapacity: maxLabCapacity,
		timeProvider:   realTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List возвращает все лаборатории по имени
func (s *Service) List(ctx context.Context) (*models.LabListResponse, error) {
	labs, err := s.labRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainLabList(labs), nil
}

// Create создает лабораторию. Доступно только администратору.
func (s *Service) Create(ctx context.Context, who domain.Identity, req *models.CreateLabRequest) (*models.LabResponse, error) {
	s.logger.Info("Create: creating lab %q capacity=%d by user=%s", req.Name, req.Capacity, who.UserID)

	if err := s.requireAdmin("Create", who); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxLabNameLength {
		s.logger.Warn("Create: invalid lab name %q", req.Name)
		return nil, fmt.Errorf("%w: lab name must be 1-%d characters", ErrInvalidInput, domain.MaxLabNameLength)
	}
	if err := s.validateCapacity(req.Capacity); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	equipment := req.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	lab, err := s.labRepo.Create(ctx, &domain.Lab{
		Name:      name,
		Capacity:  req.Capacity,
		Equipment: equipment,
		CreatedAt: s.timeProvider.Now(),
	})
	if err != nil {
		if errors.Is(err, labRepo.ErrDuplicateLab) {
			s.logger.Warn("Create: lab %q already exists", name)
			return nil, ErrLabAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: lab id=%d %q created", lab.ID, lab.Name)
	return models.FromDomainLab(lab), nil
}

// Update меняет вместимость и оборудование лаборатории
func (s *Service) Update(ctx context.Context, who domain.Identity, id int64, req *models.UpdateLabRequest) (*models.LabResponse, error) {
	s.logger.Info("Update: updating lab id=%d by user=%s", id, who.UserID)

	if err := s.requireAdmin("Update", who); err != nil {
		return nil, err
	}

	lab, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Capacity != nil {
		if err := s.validateCapacity(*req.Capacity); err != nil {
			s.logger.Warn("Update: %v", err)
			return nil, err
		}
		lab.Capacity = *req.Capacity
	}
	if req.Equipment != nil {
		lab.Equipment = *req.Equipment
	}

	now := s.timeProvider.Now()
	lab.UpdatedAt = &now

	if err := s.labRepo.Update(ctx, lab); err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			return nil, ErrLabNotFound
		}
		s.logger.Error("Update: repository error for lab id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: lab id=%d updated, capacity=%d", id, lab.Capacity)
	return models.FromDomainLab(lab), nil
}

// Delete удаляет лабораторию вместе с окнами, отключениями и назначениями
func (s *Service) Delete(ctx context.Context, who domain.Identity, id int64) error {
	s.logger.Info("Delete: deleting lab id=%d by user=%s", id, who.UserID)

	if err := s.requireAdmin("Delete", who); err != nil {
		return err
	}

	if err := s.labRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			s.logger.Warn("Delete: lab id=%d not found", id)
			return ErrLabNotFound
		}
		s.logger.Error("Delete: repository error for lab id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: lab id=%d deleted", id)
	return nil
}

// AddWindow добавляет окно в недельный шаблон. Дубликаты и пересечения допустимы.
func (s *Service) AddWindow(ctx context.Context, who domain.Identity, labID int64, req *models.AddWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("AddWindow: lab id=%d %s %s-%s by user=%s", labID, req.DayOfWeek, req.StartTime, req.EndTime, who.UserID)

	if err := s.requireAdmin("AddWindow", who); err != nil {
		return nil, err
	}

	weekday := domain.Weekday(req.DayOfWeek)
	if !weekday.IsValid() {
		s.logger.Warn("AddWindow: invalid day of week %q", req.DayOfWeek)
		return nil, fmt.Errorf("%w: day_of_week must be one of Monday..Sunday", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		s.logger.Warn("AddWindow: start %s is not before end %s", start, end)
		return nil, fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}

	if _, err := s.get(ctx, "AddWindow", labID); err != nil {
		return nil, err
	}

	window, err := s.labRepo.AddWindow(ctx, &domain.AvailabilityWindow{
		LabID:     labID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		s.logger.Error("AddWindow: repository error for lab id=%d: %v", labID, err)
		return nil, fmt.Errorf("%w: AddWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddWindow: window id=%d added to lab id=%d", window.ID, labID)
	return models.FromDomainWindow(window), nil
}

// ListWindows возвращает окна лаборатории на день недели
func (s *Service) ListWindows(ctx context.Context, labID int64, day string) ([]*models.WindowResponse, error) {
	weekday := domain.Weekday(day)
	if !weekday.IsValid() {
		return nil, fmt.Errorf("%w: day_of_week must be one of Monday..Sunday", ErrInvalidInput)
	}

	if _, err := s.get(ctx, "ListWindows", labID); err != nil {
		return nil, err
	}

	windows, err := s.labRepo.GetWindows(ctx, labID, weekday)
	if err != nil {
		s.logger.Error("ListWindows: repository error for lab id=%d: %v", labID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.WindowResponse, 0, len(windows))
	for i := range windows {
		result = append(result, models.FromDomainWindow(&windows[i]))
	}
	return result, nil
}

// DeleteWindow удаляет окно из шаблона лаборатории
func (s *Service) DeleteWindow(ctx context.Context, who domain.Identity, labID, windowID int64) error {
	s.logger.Info("DeleteWindow: lab id=%d window id=%d by user=%s", labID, windowID, who.UserID)

	if err := s.requireAdmin("DeleteWindow", who); err != nil {
		return err
	}

	if err := s.labRepo.DeleteWindow(ctx, labID, windowID); err != nil {
		if errors.Is(err, labRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found in lab id=%d", windowID, labID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error: %v", err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Disable отключает лабораторию на дату. Повторный вызов обновляет причину.
func (s *Service) Disable(ctx context.Context, who domain.Identity, labID int64, req *models.DisableLabRequest) (*models.DisabledLabResponse, error) {
	s.logger.Info("Disable: lab id=%d date=%s by user=%s", labID, req.Date, who.UserID)

	if err := s.requireAdmin("Disable", who); err != nil {
		return nil, err
	}

	date, err := s.parseFutureDate(req.Date)
	if err != nil {
		s.logger.Warn("Disable: %v", err)
		return nil, err
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxDisableReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxDisableReasonLength)
	}

	if _, err := s.get(ctx, "Disable", labID); err != nil {
		return nil, err
	}

	if err := s.labRepo.Disable(ctx, &domain.DisabledLab{
		LabID:     labID,
		Date:      date,
		Reason:    req.Reason,
		CreatedAt: s.timeProvider.Now(),
	}); err != nil {
		s.logger.Error("Disable: repository error for lab id=%d: %v", labID, err)
		return nil, fmt.Errorf("%w: Disable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Disable: lab id=%d disabled on %s", labID, req.Date)
	return &models.DisabledLabResponse{LabID: labID, Date: types.FormatDate(date), Reason: req.Reason}, nil
}

// Enable снимает отключение лаборатории на дату
func (s *Service) Enable(ctx context.Context, who domain.Identity, labID int64, dateStr string) error {
	s.logger.Info("Enable: lab id=%d date=%s by user=%s", labID, dateStr, who.UserID)

	if err := s.requireAdmin("Enable", who); err != nil {
		return err
	}

	date, err := types.ParseDate(dateStr)
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	if err := s.labRepo.Enable(ctx, labID, date); err != nil {
		if errors.Is(err, labRepo.ErrDisabledNotFound) {
			s.logger.Warn("Enable: lab id=%d is not disabled on %s", labID, dateStr)
			return ErrNotDisabled
		}
		s.logger.Error("Enable: repository error for lab id=%d: %v", labID, err)
		return fmt.Errorf("%w: Enable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Enable: lab id=%d enabled on %s", labID, dateStr)
	return nil
}

// AssignAssistant назначает лаборанта на лабораторию
func (s *Service) AssignAssistant(ctx context.Context, who domain.Identity, labID int64, req *models.AssignAssistantRequest) error {
	s.logger.Info("AssignAssistant: lab id=%d assistant=%s by user=%s", labID, req.AssistantID, who.UserID)

	if err := s.requireAdmin("AssignAssistant", who); err != nil {
		return err
	}

	assistantID := strings.TrimSpace(req.AssistantID)
	if assistantID == "" {
		return fmt.Errorf("%w: assistant_college_id is required", ErrInvalidInput)
	}

	if _, err := s.get(ctx, "AssignAssistant", labID); err != nil {
		return err
	}

	if err := s.labRepo.AssignAssistant(ctx, &domain.LabAssistantAssignment{
		LabID:       labID,
		AssistantID: assistantID,
		AssignedAt:  s.timeProvider.Now(),
	}); err != nil {
		if errors.Is(err, labRepo.ErrAlreadyAssigned) {
			s.logger.Warn("AssignAssistant: %s already assigned to lab id=%d", assistantID, labID)
			return ErrAlreadyAssigned
		}
		s.logger.Error("AssignAssistant: repository error: %v", err)
		return fmt.Errorf("%w: AssignAssistant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignAssistant: %s assigned to lab id=%d", assistantID, labID)
	return nil
}

func (s *Service) requireAdmin(op string, who domain.Identity) error {
	if !who.Role.IsAdmin() {
		s.logger.Warn("%s: user=%s with role=%s is not an admin", op, who.UserID, who.Role)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Lab, error) {
	lab, err := s.labRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			s.logger.Warn("%s: lab id=%d not found", op, id)
			return nil, ErrLabNotFound
		}
		s.logger.Error("%s: repository error for lab id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lab, nil
}

func (s *Service) validateCapacity(capacity int) error {
	if capacity < 1 || capacity > s.maxLabCapacity {
		return fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, s.maxLabCapacity)
	}
	return nil
}

func (s *Service) parseFutureDate(value string) (time.Time, error) {
	date, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	if types.IsDateInPast(date, s.timeProvider.Now()) {
		return time.Time{}, fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, value)
	}
	return date, nil
}
