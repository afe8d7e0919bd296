package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

var (
	// ErrInvalidDecision возвращается при неизвестном решении
	ErrInvalidDecision = errors.New("decision must be approve or reject")
)

// Request модели

// DecisionRequest запрос на одобрение или отклонение бронирования
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject approved rejected"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64      `json:"id"`
	CollegeID     string     `json:"college_id"`
	LabName       string     `json:"lab_name"`
	BookingDate   string     `json:"booking_date"` // "2025-10-15"
	StartTime     string     `json:"start_time"`   // "10:00"
	EndTime       string     `json:"end_time"`
	SeatsRequired int        `json:"seats_required"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		CollegeID:     b.UserID,
		LabName:       b.LabName,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		SeatsRequired: b.Seats(),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDecisionStatus конвертирует решение в целевой статус
func ToDecisionStatus(decision string) (domain.BookingStatus, error) {
	switch decision {
	case "approve", "approved":
		return domain.StatusApproved, nil
	case "reject", "rejected":
		return domain.StatusRejected, nil
	default:
		return "", ErrInvalidDecision
	}
}
