package get_user_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type stubService struct {
	who domain.Identity
	err error
}

func (s *stubService) ListMine(_ context.Context, who domain.Identity) (*models.BookingListResponse, error) {
	s.who = who
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, CollegeID: who.UserID}}}, nil
}

func request() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/bookings", nil)
	return r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "CS101", Role: domain.RoleFaculty}))
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CS101", svc.who.UserID)

	var body models.BookingListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "CS101", body.Bookings[0].CollegeID)
}

func TestHandle_Failure(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{err: errors.New("db down")}, logger.NewNop()).Handle(rec, request())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
