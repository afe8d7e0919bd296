package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
)

const fieldSeatsRequired = "seats_required"

const (
	msgInvalidDate       = "некорректная дата бронирования: ожидается YYYY-MM-DD не раньше сегодняшнего дня"
	msgInvalidTime       = "некорректное время: ожидается HH:MM, начало раньше конца"
	msgInvalidSeatCount  = "количество мест должно быть не меньше 1"
	msgCapacityExceeded  = "запрошенное количество мест превышает вместимость лаборатории"
	msgOutsideTemplate   = "время не совпадает ни с одним из доступных окон лаборатории"
	msgInsufficientSeats = "недостаточно свободных мест в выбранном интервале"
	msgLabNotFound       = "лаборатория не найдена"
	msgLabDisabled       = "лаборатория отключена на выбранную дату"
	msgBusy              = "лаборатория занята другим запросом, повторите позже"
	retryAfterSeconds    = "1"
	headerRetryAfter     = "Retry-After"
)

// RespondAdmissionError отвечает на ошибки проверки мест.
// Возвращает false, если ошибка к проверке мест не относится.
func RespondAdmissionError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, admission.ErrInvalidDate):
		RespondBadRequest(w, msgInvalidDate)
	case errors.Is(err, admission.ErrInvalidTime):
		RespondBadRequest(w, msgInvalidTime)
	case errors.Is(err, admission.ErrInvalidSeatCount):
		RespondBadRequest(w, msgInvalidSeatCount)
	case errors.Is(err, admission.ErrCapacityExceeded):
		RespondBadRequest(w, msgCapacityExceeded)
	case errors.Is(err, admission.ErrOutsideTemplate):
		RespondBadRequest(w, msgOutsideTemplate)
	case errors.Is(err, admission.ErrInsufficientSeats):
		RespondConflict(w, msgInsufficientSeats)
	case errors.Is(err, admission.ErrLabNotFound):
		RespondNotFound(w, msgLabNotFound)
	case errors.Is(err, admission.ErrLabDisabled):
		RespondConflict(w, msgLabDisabled)
	default:
		return false
	}
	return true
}

// RespondDecodeError отвечает 400 на ошибку разбора тела.
// Нечисловое seats_required считается некорректным количеством мест.
func RespondDecodeError(w http.ResponseWriter, err error, message string) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == fieldSeatsRequired {
		RespondBadRequest(w, msgInvalidSeatCount)
		return
	}
	RespondBadRequest(w, message)
}

// RespondBusy отвечает 503, когда не удалось дождаться блокировки
func RespondBusy(w http.ResponseWriter) {
	w.Header().Set(headerRetryAfter, retryAfterSeconds)
	RespondError(w, http.StatusServiceUnavailable, msgBusy)
}
