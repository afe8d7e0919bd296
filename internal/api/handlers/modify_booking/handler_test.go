package modify_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	modifyBooking "github.com/m04kA/SMC-LabBookingService/internal/usecase/modify_booking"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *modifyBooking.Request
	resp *modifyBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *modifyBooking.Request) (*modifyBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func do(uc *stubUseCase, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "CS101", Role: domain.RoleFaculty}))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_KeepsOmittedFields(t *testing.T) {
	uc := &stubUseCase{resp: &modifyBooking.Response{
		ID:            3,
		UserID:        "CS101",
		LabName:       "Physics",
		BookingDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		StartTime:     "13:00",
		EndTime:       "15:00",
		SeatsRequired: 2,
		Status:        "pending",
		FreeSeats:     8,
		UpdatedAt:     time.Now(),
	}}

	rec := do(uc, "3", `{"start_time":"13:00","end_time":"15:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.BookingID)
	assert.Empty(t, uc.got.LabName)
	assert.Empty(t, uc.got.Date)
	assert.Nil(t, uc.got.SeatsRequired)

	var body BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "13:00", body.StartTime)
	assert.Equal(t, "pending", body.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: modifyBooking.ErrBookingNotFound, want: http.StatusNotFound},
		{err: modifyBooking.ErrAccessDenied, want: http.StatusForbidden},
		{err: modifyBooking.ErrAlreadyProcessed, want: http.StatusConflict},
		{err: modifyBooking.ErrInsufficientSeats, want: http.StatusConflict},
		{err: modifyBooking.ErrOutsideTemplate, want: http.StatusBadRequest},
		{err: modifyBooking.ErrBusy, want: http.StatusServiceUnavailable},
		{err: modifyBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := do(&stubUseCase{err: fmt.Errorf("%w: wrapped", tt.err)}, "3", `{"start_time":"13:00","end_time":"15:00"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_BadPathAndBody(t *testing.T) {
	uc := &stubUseCase{}

	assert.Equal(t, http.StatusBadRequest, do(uc, "abc", `{"start_time":"13:00","end_time":"15:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(uc, "3", `{"start_time":"13:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(uc, "3", `[]`).Code)
	assert.Nil(t, uc.got)
}

func TestHandle_NonNumericSeats(t *testing.T) {
	uc := &stubUseCase{}
	rec := do(uc, "3", `{"start_time":"13:00","end_time":"15:00","seats_required":"abc"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "количество мест должно быть не меньше 1", resp.Error)
	assert.Nil(t, uc.got)
}
