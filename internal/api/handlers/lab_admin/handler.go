package lab_admin

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/labs"
	"github.com/m04kA/SMC-LabBookingService/internal/service/labs/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLabID       = "некорректный ID лаборатории"
	msgInvalidWindowID    = "некорректный ID окна доступности"
	msgMissingDate        = "дата обязательна"
	msgMissingDay         = "день недели обязателен"
	msgUnauthorized       = "требуется авторизация"
	msgForbidden          = "операция доступна только администратору"
	msgLabNotFound        = "лаборатория не найдена"
	msgWindowNotFound     = "окно доступности не найдено"
	msgNotDisabled        = "лаборатория не отключена на эту дату"
	msgLabAlreadyExists   = "лаборатория с таким именем уже существует"
	msgAlreadyAssigned    = "лаборант уже назначен на эту лабораторию"
	msgInvalidInput       = "некорректные данные"
)

type Handler struct {
	service LabService
	logger  Logger
}

func NewHandler(service LabService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/labs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /labs", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/labs
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "POST /labs"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req models.CreateLabRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	lab, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Lab created successfully: lab_id=%d, name=%s", op, lab.ID, lab.Name)
	handlers.RespondJSON(w, http.StatusCreated, lab)
}

// Update PUT /api/v1/labs/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /labs/{id}"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	var req models.UpdateLabRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	lab, err := h.service.Update(r.Context(), identity, labID, &req)
	if err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Lab updated successfully: lab_id=%d", op, labID)
	handlers.RespondJSON(w, http.StatusOK, lab)
}

// Delete DELETE /api/v1/labs/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /labs/{id}"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, labID); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Lab deleted successfully: lab_id=%d", op, labID)
	w.WriteHeader(http.StatusNoContent)
}

// AddWindow POST /api/v1/labs/{id}/availability
func (h *Handler) AddWindow(w http.ResponseWriter, r *http.Request) {
	const op = "POST /labs/{id}/availability"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	var req models.AddWindowRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	window, err := h.service.AddWindow(r.Context(), identity, labID, &req)
	if err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Window added: lab_id=%d, window_id=%d", op, labID, window.ID)
	handlers.RespondJSON(w, http.StatusCreated, window)
}

// ListWindows GET /api/v1/labs/{id}/availability?day=Monday
func (h *Handler) ListWindows(w http.ResponseWriter, r *http.Request) {
	const op = "GET /labs/{id}/availability"

	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	day := r.URL.Query().Get("day")
	if day == "" {
		handlers.RespondBadRequest(w, msgMissingDay)
		return
	}

	windows, err := h.service.ListWindows(r.Context(), labID, day)
	if err != nil {
		h.respondError(w, op, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, windows)
}

// DeleteWindow DELETE /api/v1/labs/{id}/availability/{windowId}
func (h *Handler) DeleteWindow(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /labs/{id}/availability/{windowId}"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}
	windowID, ok := h.pathID(w, r, op, "windowId", msgInvalidWindowID)
	if !ok {
		return
	}

	if err := h.service.DeleteWindow(r.Context(), identity, labID, windowID); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Window deleted: lab_id=%d, window_id=%d", op, labID, windowID)
	w.WriteHeader(http.StatusNoContent)
}

// Disable POST /api/v1/labs/{id}/disable
func (h *Handler) Disable(w http.ResponseWriter, r *http.Request) {
	const op = "POST /labs/{id}/disable"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	var req models.DisableLabRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	result, err := h.service.Disable(r.Context(), identity, labID, &req)
	if err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Lab disabled: lab_id=%d, date=%s", op, labID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Enable DELETE /api/v1/labs/{id}/disable?date=YYYY-MM-DD
func (h *Handler) Enable(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /labs/{id}/disable"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	if err := h.service.Enable(r.Context(), identity, labID, date); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Lab enabled: lab_id=%d, date=%s", op, labID, date)
	w.WriteHeader(http.StatusNoContent)
}

// AssignAssistant POST /api/v1/labs/{id}/assistants
func (h *Handler) AssignAssistant(w http.ResponseWriter, r *http.Request) {
	const op = "POST /labs/{id}/assistants"

	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	labID, ok := h.pathID(w, r, op, "id", msgInvalidLabID)
	if !ok {
		return
	}

	var req models.AssignAssistantRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	if err := h.service.AssignAssistant(r.Context(), identity, labID, &req); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Assistant assigned: lab_id=%d, assistant=%s", op, labID, req.AssistantID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
	}
	return identity, ok
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, op, name, msg string) (int64, bool) {
	id, err := handlers.PathInt64(r, name)
	if err != nil {
		h.logger.Warn("%s - Invalid %s: %v", op, name, err)
		handlers.RespondBadRequest(w, msg)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	if details := handlers.ValidateStruct(dst); details != nil {
		h.logger.Warn("%s - Validation failed: fields=%v", op, details)
		handlers.RespondValidationError(w, details)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, labs.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", op)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, labs.ErrLabNotFound):
		h.logger.Warn("%s - Lab not found", op)
		handlers.RespondNotFound(w, msgLabNotFound)

	case errors.Is(err, labs.ErrWindowNotFound):
		h.logger.Warn("%s - Window not found", op)
		handlers.RespondNotFound(w, msgWindowNotFound)

	case errors.Is(err, labs.ErrNotDisabled):
		h.logger.Warn("%s - Lab not disabled", op)
		handlers.RespondNotFound(w, msgNotDisabled)

	case errors.Is(err, labs.ErrLabAlreadyExists):
		h.logger.Warn("%s - Lab already exists", op)
		handlers.RespondConflict(w, msgLabAlreadyExists)

	case errors.Is(err, labs.ErrAlreadyAssigned):
		h.logger.Warn("%s - Assistant already assigned", op)
		handlers.RespondConflict(w, msgAlreadyAssigned)

	case errors.Is(err, labs.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
