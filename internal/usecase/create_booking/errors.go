package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrAccessDenied возвращается, когда роль не может бронировать
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrBusy возвращается, когда не удалось дождаться блокировки интервала
	ErrBusy = errors.New("create_booking: lab is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
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
