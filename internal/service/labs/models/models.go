package models

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request модели

// CreateLabRequest запрос на создание лаборатории
type CreateLabRequest struct {
	Name      string   `json:"lab_name" validate:"required,max=100"`
	Capacity  int      `json:"capacity" validate:"required,gte=1"`
	Equipment []string `json:"equipment,omitempty" validate:"dive,required"`
}

// UpdateLabRequest запрос на обновление лаборатории.
// Имя не меняется: бронирования ссылаются на лабораторию по имени.
type UpdateLabRequest struct {
	Capacity  *int      `json:"capacity,omitempty" validate:"omitempty,gte=1"`
	Equipment *[]string `json:"equipment,omitempty"`
}

// AddWindowRequest запрос на добавление окна доступности
type AddWindowRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required"` // "Monday"
	StartTime string `json:"start_time" validate:"required"`  // "09:00"
	EndTime   string `json:"end_time" validate:"required"`
}

// DisableLabRequest запрос на отключение лаборатории на дату
type DisableLabRequest struct {
	Date   string  `json:"date" validate:"required"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// AssignAssistantRequest запрос на назначение лаборанта
type AssignAssistantRequest struct {
	AssistantID string `json:"assistant_college_id" validate:"required"`
}

// Response модели

// LabResponse ответ с данными лаборатории
type LabResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"lab_name"`
	Capacity  int        `json:"capacity"`
	Equipment []string   `json:"equipment"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// LabListResponse ответ со списком лабораторий
type LabListResponse struct {
	Labs []LabResponse `json:"labs"`
}

// WindowResponse ответ с окном доступности
type WindowResponse struct {
	ID        int64  `json:"id"`
	LabID     int64  `json:"lab_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DisabledLabResponse ответ об отключении лаборатории
type DisabledLabResponse struct {
	LabID  int64   `json:"lab_id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// Методы конвертации

// FromDomainLab конвертирует domain модель в DTO
func FromDomainLab(l *domain.Lab) *LabResponse {
	if l == nil {
		return nil
	}

	equipment := l.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	return &LabResponse{
		ID:        l.ID,
		Name:      l.Name,
		Capacity:  l.Capacity,
		Equipment: equipment,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// FromDomainLabList конвертирует список domain моделей в DTO
func FromDomainLabList(labs []*domain.Lab) *LabListResponse {
	resp := &LabListResponse{Labs: make([]LabResponse, 0, len(labs))}
	for _, l := range labs {
		if r := FromDomainLab(l); r != nil {
			resp.Labs = append(resp.Labs, *r)
		}
	}
	return resp
}

// FromDomainWindow конвертирует окно доступности в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	return &WindowResponse{
		ID:        w.ID,
		LabID:     w.LabID,
		DayOfWeek: string(w.Weekday),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
	}
}
