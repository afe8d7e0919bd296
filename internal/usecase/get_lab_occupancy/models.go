package get_lab_occupancy

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// View вид представления загрузки
type View string

const (
	ViewPublic    View = "public"    // студенты и преподаватели
	ViewAdmin     View = "admin"     // все лаборатории с деталями
	ViewAssistant View = "assistant" // только назначенные лаборатории с деталями
)

// Request модель запроса загрузки лабораторий
type Request struct {
	Identity domain.Identity
	Date     string // "YYYY-MM-DD"; пустая дата допустима только при AssignedOnly
	LabName  string // если задано, только одна лаборатория

	// AssignedOnly представление лаборанта по назначенным лабораториям
	AssignedOnly bool
}

// Response загрузка лабораторий на дату
type Response struct {
	Date    time.Time
	Weekday domain.Weekday
	View    View
	Labs    []LabOccupancy
}

// LabOccupancy загрузка одной лаборатории
type LabOccupancy struct {
	Lab     *domain.Lab
	Slots   []SlotOccupancy
	Summary Summary

	// Заполняются только в детальных представлениях
	Bookings []*domain.Booking

	// Заполняются только для администратора
	Disabled       bool
	DisabledReason *string
	Status         string
	StatusBadge    string
}

// SlotOccupancy загрузка одного окна доступности
type SlotOccupancy struct {
	Slot      string // "HH:MM-HH:MM"
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	Booked    int
	Available int // может быть отрицательным при переполнении
	Label     string

	// Активные бронирования, пересекающиеся с окном (только детальные представления)
	Bookings []*domain.Booking
}

// Summary сводка по всем окнам лаборатории на дату
type Summary struct {
	TotalSlots    int
	Booked        int
	TotalCapacity int
	Free          int
	Label         string
}
