package modify_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	modifyBooking "github.com/m04kA/SMC-LabBookingService/internal/usecase/modify_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgUnauthorized       = "требуется авторизация"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "изменять бронирование может только владелец или администратор"
	msgAlreadyProcessed   = "бронирование уже отклонено или отменено"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase ModifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase ModifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ModifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(req); details != nil {
		h.logger.Warn("PUT /bookings/%d - Validation failed: fields=%v", bookingID, details)
		handlers.RespondValidationError(w, details)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity, bookingID))
	if err != nil {
		if handlers.RespondAdmissionError(w, err) {
			h.logger.Warn("PUT /bookings/%d - Modification rejected: user_id=%s, error=%v", bookingID, identity.UserID, err)
			return
		}

		switch {
		case errors.Is(err, modifyBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/%d - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, modifyBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/%d - Access denied: user_id=%s", bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, modifyBooking.ErrAlreadyProcessed):
			h.logger.Warn("PUT /bookings/%d - Booking already processed", bookingID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, modifyBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, modifyBooking.ErrBusy):
			h.logger.Warn("PUT /bookings/%d - Lab busy", bookingID)
			handlers.RespondBusy(w)

		default:
			h.logger.Error("PUT /bookings/%d - Failed to modify booking: error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d - Booking modified successfully: lab=%s, status=%s", bookingID, result.LabName, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
