package modify_booking

import (
	"errors"

	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("modify_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец, не администратор и не назначенный лаборант
	ErrAccessDenied = errors.New("modify_booking: access denied")

	// ErrAlreadyProcessed возвращается для отклонённых и отменённых бронирований
	ErrAlreadyProcessed = errors.New("modify_booking: booking is already rejected or cancelled")

	// ErrBusy возвращается, когда не удалось дождаться блокировки интервала
	ErrBusy = errors.New("modify_booking: lab is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_booking: internal error")
)

// Ошибки проверки мест общие для создания и изменения бронирования
var (
	ErrInvalidDate       = admission.ErrInvalidDate
	ErrInvalidTime       = admission.ErrInvalidTime
	ErrInvalidSeatCount  = admission.ErrInvalidSeatCount
	ErrCapacityExceeded  = admission.ErrCapacityExceeded
	ErrOutsideTemplate   = admission.ErrOutsideTemplate
	ErrInsufficientSeats = admission.ErrInsufficientSeats
	ErrLabNotFound       = admission.ErrLabNotFound
	ErrLabDisabled       = admission.ErrLabDisabled
)
