package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-LabBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type stubService struct{ err error }

func (s *stubService) GetByID(_ context.Context, id int64, _ domain.Identity) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{name: "ok", id: "1", want: http.StatusOK},
		{name: "bad id", id: "0", want: http.StatusBadRequest},
		{name: "not found", id: "1", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "denied", id: "1", err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", id: "1", err: fmt.Errorf("%w: db", bookings.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+tt.id, nil)
			r = mux.SetURLVars(r, map[string]string{"id": tt.id})
			r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "CS101", Role: domain.RoleStudent}))
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, r)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
