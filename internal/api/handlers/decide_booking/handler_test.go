package decide_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-LabBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type stubService struct {
	got *models.DecisionRequest
	err error
}

func (s *stubService) Decide(_ context.Context, id int64, _ domain.Identity, req *models.DecisionRequest) (*models.BookingResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: string(domain.StatusApproved)}, nil
}

func do(svc *stubService, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/decision", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": "9"})
	r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "ADM", Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_Approve(t *testing.T) {
	svc := &stubService{}
	rec := do(svc, `{"decision":"approve"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approve", svc.got.Decision)

	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(9), body.ID)
	assert.Equal(t, "approved", body.Status)
}

func TestHandle_RejectsUnknownDecision(t *testing.T) {
	svc := &stubService{}
	rec := do(svc, `{"decision":"maybe"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Details, "decision")
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{err: bookings.ErrAlreadyProcessed, want: http.StatusConflict},
		{err: bookings.ErrInvalidInput, want: http.StatusBadRequest},
		{err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := do(&stubService{err: fmt.Errorf("%w: wrapped", tt.err)}, `{"decision":"reject"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
