package get_lab_occupancy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	getLabOccupancy "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_lab_occupancy"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректная дата: ожидается YYYY-MM-DD не раньше сегодняшнего дня"
	msgMissingLab   = "имя лаборатории обязательно"
	msgLabNotFound  = "лаборатория не найдена"
	msgAccessDenied = "роль не позволяет просматривать эту загрузку"

	queryParamDate   = "date"
	pathParamLabName = "labName"
)

type Handler struct {
	useCase GetLabOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase GetLabOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleAvailable GET /api/v1/labs/available?date=YYYY-MM-DD
func (h *Handler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get(queryParamDate)
	if date == "" {
		h.logger.Warn("GET /labs/available - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	h.handle(w, r, "GET /labs/available", &getLabOccupancy.Request{Date: date})
}

// HandleLab GET /api/v1/labs/{labName}/occupancy?date=YYYY-MM-DD
func (h *Handler) HandleLab(w http.ResponseWriter, r *http.Request) {
	labName := mux.Vars(r)[pathParamLabName]
	if labName == "" {
		handlers.RespondBadRequest(w, msgMissingLab)
		return
	}
	date := r.URL.Query().Get(queryParamDate)
	if date == "" {
		h.logger.Warn("GET /labs/%s/occupancy - Missing date", labName)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	h.handle(w, r, "GET /labs/{labName}/occupancy", &getLabOccupancy.Request{Date: date, LabName: labName})
}

// HandleAssigned GET /api/v1/lab-assistant/labs/assigned?date=YYYY-MM-DD
// Без даты используется сегодняшний день.
func (h *Handler) HandleAssigned(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "GET /lab-assistant/labs/assigned", &getLabOccupancy.Request{
		Date:         r.URL.Query().Get(queryParamDate),
		AssignedOnly: true,
	})
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, op string, req *getLabOccupancy.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	req.Identity = identity

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getLabOccupancy.ErrInvalidDate):
			h.logger.Warn("%s - Invalid date: date=%s", op, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getLabOccupancy.ErrLabNotFound):
			h.logger.Warn("%s - Lab not found: lab=%s", op, req.LabName)
			handlers.RespondNotFound(w, msgLabNotFound)

		case errors.Is(err, getLabOccupancy.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: user_id=%s, role=%s", op, identity.UserID, identity.Role)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("%s - Failed to get occupancy: date=%s, error=%v", op, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Occupancy retrieved successfully: date=%s, view=%s, labs_count=%d",
		op, req.Date, result.View, len(result.Labs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
