package get_lab_occupancy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	getLabOccupancy "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_lab_occupancy"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *getLabOccupancy.Request
	resp *getLabOccupancy.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getLabOccupancy.Request) (*getLabOccupancy.Response, error) {
	s.got = req
	return s.resp, s.err
}

func withIdentity(r *http.Request, role domain.Role) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "U1", Role: role}))
}

func sampleResponse(view getLabOccupancy.View) *getLabOccupancy.Response {
	booking := &domain.Booking{
		ID:            1,
		UserID:        "CS101",
		LabName:       "Physics",
		BookingDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		StartTime:     "09:00",
		EndTime:       "11:00",
		SeatsRequired: 4,
		Status:        domain.StatusApproved,
	}
	return &getLabOccupancy.Response{
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		Weekday: domain.Monday,
		View:    view,
		Labs: []getLabOccupancy.LabOccupancy{{
			Lab: &domain.Lab{ID: 1, Name: "Physics", Capacity: 10},
			Slots: []getLabOccupancy.SlotOccupancy{{
				Slot: "09:00-11:00", StartTime: "09:00", EndTime: "11:00",
				Capacity: 10, Booked: 4, Available: 6, Label: "6/10 free",
				Bookings: []*domain.Booking{booking},
			}},
			Summary:  getLabOccupancy.Summary{TotalSlots: 1, Booked: 4, TotalCapacity: 10, Free: 6, Label: "6/10 free"},
			Bookings: []*domain.Booking{booking},
		}},
	}
}

func TestHandleAvailable(t *testing.T) {
	uc := &stubUseCase{resp: sampleResponse(getLabOccupancy.ViewPublic)}
	r := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/labs/available?date=2025-03-10", nil), domain.RoleStudent)
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).HandleAvailable(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-10", uc.got.Date)
	assert.Equal(t, domain.RoleStudent, uc.got.Identity.Role)

	raw := rec.Body.String()
	assert.NotContains(t, raw, `"booked"`)

	var body OccupancyResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "Monday", body.Weekday)
	require.Len(t, body.Labs, 1)
	assert.Equal(t, "Physics", body.Labs[0].LabName)
	assert.Equal(t, 6, body.Labs[0].Slots[0].Available)
	assert.Empty(t, body.Labs[0].Bookings)
	assert.Empty(t, body.Labs[0].Slots[0].Bookings)
	assert.Nil(t, body.Labs[0].Slots[0].Booked)
	assert.Nil(t, body.Labs[0].Summary.Booked)
	assert.Equal(t, 6, body.Labs[0].Summary.Free)
	assert.NotNil(t, body.Labs[0].Equipment)
}

func TestHandleAvailable_AdminSeesBookings(t *testing.T) {
	uc := &stubUseCase{resp: sampleResponse(getLabOccupancy.ViewAdmin)}
	r := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/labs/available?date=2025-03-10", nil), domain.RoleAdmin)
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).HandleAvailable(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var body OccupancyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Labs[0].Bookings, 1)
	assert.Equal(t, "CS101", body.Labs[0].Bookings[0].CollegeID)
	require.Len(t, body.Labs[0].Slots[0].Bookings, 1)
	require.NotNil(t, body.Labs[0].Slots[0].Booked)
	assert.Equal(t, 4, *body.Labs[0].Slots[0].Booked)
	require.NotNil(t, body.Labs[0].Summary.Booked)
	assert.Equal(t, 4, *body.Labs[0].Summary.Booked)
}

func TestHandleAvailable_MissingDate(t *testing.T) {
	uc := &stubUseCase{}
	r := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/labs/available", nil), domain.RoleStudent)
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).HandleAvailable(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandleLab(t *testing.T) {
	uc := &stubUseCase{resp: sampleResponse(getLabOccupancy.ViewPublic)}
	r := httptest.NewRequest(http.MethodGet, "/api/v1/labs/Physics/occupancy?date=2025-03-10", nil)
	r = withIdentity(mux.SetURLVars(r, map[string]string{"labName": "Physics"}), domain.RoleFaculty)
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).HandleLab(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Physics", uc.got.LabName)
}

func TestHandleAssigned_DateOptional(t *testing.T) {
	uc := &stubUseCase{resp: sampleResponse(getLabOccupancy.ViewAssistant)}
	r := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/lab-assistant/labs/assigned", nil), domain.RoleLabAssistant)
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).HandleAssigned(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.AssignedOnly)
	assert.Empty(t, uc.got.Date)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: getLabOccupancy.ErrInvalidDate, want: http.StatusBadRequest},
		{err: getLabOccupancy.ErrLabNotFound, want: http.StatusNotFound},
		{err: getLabOccupancy.ErrAccessDenied, want: http.StatusForbidden},
		{err: getLabOccupancy.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &stubUseCase{err: fmt.Errorf("%w: wrapped", tt.err)}
			r := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/labs/available?date=2025-03-10", nil), domain.RoleStudent)
			rec := httptest.NewRecorder()

			NewHandler(uc, logger.NewNop()).HandleAvailable(rec, r)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_NoIdentity(t *testing.T) {
	uc := &stubUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).HandleAvailable(rec, httptest.NewRequest(http.MethodGet, "/api/v1/labs/available?date=2025-03-10", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
