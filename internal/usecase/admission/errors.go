package admission

import "errors"

var (
	// ErrInvalidDate возвращается для несуществующей или прошедшей даты
	ErrInvalidDate = errors.New("admission: invalid booking date")

	// ErrInvalidTime возвращается для некорректного времени или start >= end
	ErrInvalidTime = errors.New("admission: invalid booking time")

	// ErrInvalidSeatCount возвращается, когда запрошено меньше одного места
	ErrInvalidSeatCount = errors.New("admission: seats required must be at least 1")

	// ErrCapacityExceeded возвращается, когда запрос больше вместимости лаборатории
	ErrCapacityExceeded = errors.New("admission: seats required exceed lab capacity")

	// ErrOutsideTemplate возвращается, когда время не совпадает ни с одним окном доступности
	ErrOutsideTemplate = errors.New("admission: time is outside available time slots")

	// ErrInsufficientSeats возвращается, когда свободных мест в интервале не хватает
	ErrInsufficientSeats = errors.New("admission: not enough available seats")

	// ErrLabNotFound возвращается, когда лаборатория не найдена
	ErrLabNotFound = errors.New("admission: lab not found")

	// ErrLabDisabled возвращается, когда лаборатория отключена на дату
	ErrLabDisabled = errors.New("admission: lab is disabled on this date")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("admission: internal error")
)

// Result значения для метрики lab_admissions_total
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultInternal = "internal_error"
)

// ResultOf возвращает метку метрики для ошибки проверки
func ResultOf(err error) string {
	switch {
	case err == nil:
		return ResultAccepted
	case errors.Is(err, ErrInsufficientSeats):
		return "insufficient_seats"
	case errors.Is(err, ErrOutsideTemplate):
		return "outside_template"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInternal):
		return ResultInternal
	default:
		return ResultRejected
	}
}
