package override_booking

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

func (s *stubService) Override(_ context.Context, id int64, _ domain.Identity) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: string(domain.StatusCancelled)}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "ok", want: http.StatusOK},
		{name: "not found", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "denied", err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "terminal", err: bookings.ErrAlreadyProcessed, want: http.StatusConflict},
		{name: "internal", err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			if tt.err != nil {
				svc.err = fmt.Errorf("%w: wrapped", tt.err)
			}

			r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/4/override", nil)
			r = mux.SetURLVars(r, map[string]string{"id": "4"})
			r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{UserID: "LA1", Role: domain.RoleLabAssistant}))
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(rec, r)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
