package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-LabBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func do(t *testing.T, uc *stubUseCase, body string, identity *domain.Identity) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if identity != nil {
		r = r.WithContext(middleware.WithIdentity(r.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

var student = &domain.Identity{UserID: "CS101", Role: domain.RoleStudent}

const validBody = `{"lab_name":"Physics","booking_date":"2025-03-10","start_time":"09:00","end_time":"11:00","seats_required":4}`

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:            7,
		UserID:        "CS101",
		LabName:       "Physics",
		BookingDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		StartTime:     "09:00",
		EndTime:       "11:00",
		SeatsRequired: 4,
		Status:        "pending",
		FreeSeats:     6,
		CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}

	rec := do(t, uc, validBody, student)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "2025-03-10", body.BookingDate)
	assert.Equal(t, 6, body.FreeSeats)
	assert.Equal(t, "pending", body.Status)

	require.NotNil(t, uc.got)
	assert.Equal(t, "CS101", uc.got.Identity.UserID)
	assert.Equal(t, "2025-03-10", uc.got.Date)
	require.NotNil(t, uc.got.SeatsRequired)
	assert.Equal(t, 4, *uc.got.SeatsRequired)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: createBooking.ErrInsufficientSeats, want: http.StatusConflict},
		{err: createBooking.ErrLabDisabled, want: http.StatusConflict},
		{err: createBooking.ErrCapacityExceeded, want: http.StatusBadRequest},
		{err: createBooking.ErrInvalidSeatCount, want: http.StatusBadRequest},
		{err: createBooking.ErrOutsideTemplate, want: http.StatusBadRequest},
		{err: createBooking.ErrInvalidDate, want: http.StatusBadRequest},
		{err: createBooking.ErrInvalidTime, want: http.StatusBadRequest},
		{err: createBooking.ErrLabNotFound, want: http.StatusNotFound},
		{err: createBooking.ErrAccessDenied, want: http.StatusForbidden},
		{err: createBooking.ErrBusy, want: http.StatusServiceUnavailable},
		{err: createBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &stubUseCase{err: fmt.Errorf("%w: wrapped", tt.err)}
			rec := do(t, uc, validBody, student)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_InternalErrorHidesDetails(t *testing.T) {
	uc := &stubUseCase{err: fmt.Errorf("%w: pq: connection refused", createBooking.ErrInternal)}
	rec := do(t, uc, validBody, student)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHandle_BadRequests(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"unknown field": `{"lab_name":"Physics","booking_date":"2025-03-10","start_time":"09:00","end_time":"11:00","notes":"x"}`,
		"missing lab":   `{"booking_date":"2025-03-10","start_time":"09:00","end_time":"11:00"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := do(t, uc, body, student)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_NonNumericSeats(t *testing.T) {
	for _, seats := range []string{`"3"`, `"abc"`, `2.5`, `true`} {
		t.Run(seats, func(t *testing.T) {
			uc := &stubUseCase{}
			body := `{"lab_name":"Physics","booking_date":"2025-03-10","start_time":"09:00","end_time":"11:00","seats_required":` + seats + `}`
			rec := do(t, uc, body, student)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "количество мест должно быть не меньше 1", resp.Error)
			assert.Nil(t, uc.got)
		})
	}

	rec := do(t, &stubUseCase{}, `{"lab_name":1}`, student)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, msgInvalidRequestBody, resp.Error)
}

func TestHandle_ValidationDetails(t *testing.T) {
	rec := do(t, &stubUseCase{}, `{"lab_name":"Physics"}`, student)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Details, "booking_date")
	assert.Contains(t, body.Details, "start_time")
}

func TestHandle_NoIdentity(t *testing.T) {
	uc := &stubUseCase{}
	rec := do(t, uc, validBody, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
