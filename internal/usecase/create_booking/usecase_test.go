package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/metrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

const monday = "2030-05-06"

var (
	student = domain.Identity{UserID: "STU001", Role: domain.RoleStudent}
	admin   = domain.Identity{UserID: "ADM001", Role: domain.RoleAdmin}
)

type fixture struct {
	labs     *usecasetest.LabStore
	bookings *usecasetest.BookingStore
	metrics  *metrics.Metrics
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	labs := usecasetest.NewLabStore()
	bookings := usecasetest.NewBookingStore()
	labs.AddLab("Electronics Lab", 20, domain.Monday, "10:00-12:00", "14:00-16:00")

	log := logger.NewNop()
	m := metrics.New("create_booking_test")
	uc := NewUseCase(
		bookings,
		admission.NewChecker(labs, bookings, log),
		lock.NewLocalLocker(),
		&usecasetest.TxManager{},
		m,
		time.Second,
		log,
	).WithTimeProvider(usecasetest.NewClock(2030, time.May, 1))

	return &fixture{labs: labs, bookings: bookings, metrics: m, uc: uc}
}

func request(who domain.Identity, start, end string, seats *int) *Request {
	return &Request{
		Identity:      who,
		LabName:       "Electronics Lab",
		Date:          monday,
		StartTime:     start,
		EndTime:       end,
		SeatsRequired: seats,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", ptr.Ptr(5)))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 5, resp.SeatsRequired)
	assert.Equal(t, 15, resp.FreeSeats)
	assert.Equal(t, "STU001", resp.UserID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AdmissionsTotal.WithLabelValues("create", "accepted")))
}

func TestExecute_DefaultsToOneSeat(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SeatsRequired)
}

func TestExecute_FillsLabExactlyThenRejects(t *testing.T) {
	f := newFixture(t)
	date, _ := time.ParseInLocation(domain.DateFormat, monday, time.Local)
	f.bookings.Add(&domain.Booking{
		UserID: "ADM001", LabName: "Electronics Lab", BookingDate: date,
		StartTime: "10:00", EndTime: "12:00", SeatsRequired: 15, Status: domain.StatusApproved,
	})

	_, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", ptr.Ptr(5)))
	require.NoError(t, err, "15 + 5 fits exactly")

	_, err = f.uc.Execute(context.Background(), request(student, "10:00", "12:00", ptr.Ptr(1)))
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AdmissionsTotal.WithLabelValues("create", "insufficient_seats")))
}

func TestExecute_InactiveBookingsDoNotCount(t *testing.T) {
	f := newFixture(t)
	date, _ := time.ParseInLocation(domain.DateFormat, monday, time.Local)
	f.bookings.Add(&domain.Booking{
		LabName: "Electronics Lab", BookingDate: date,
		StartTime: "10:00", EndTime: "12:00", SeatsRequired: 20, Status: domain.StatusRejected,
	})
	f.bookings.Add(&domain.Booking{
		LabName: "Electronics Lab", BookingDate: date,
		StartTime: "10:00", EndTime: "12:00", SeatsRequired: 20, Status: domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", ptr.Ptr(20)))
	assert.NoError(t, err)
}

func TestExecute_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "nonexistent date",
			req:     &Request{Identity: student, LabName: "Electronics Lab", Date: "2030-02-30", StartTime: "10:00", EndTime: "12:00"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "past date",
			req:     &Request{Identity: student, LabName: "Electronics Lab", Date: "2030-04-30", StartTime: "10:00", EndTime: "12:00"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "end before start",
			req:     request(student, "12:00", "10:00", nil),
			wantErr: ErrInvalidTime,
		},
		{
			name:    "malformed time",
			req:     request(student, "10am", "12:00", nil),
			wantErr: ErrInvalidTime,
		},
		{
			name:    "zero seats",
			req:     request(student, "10:00", "12:00", ptr.Ptr(0)),
			wantErr: ErrInvalidSeatCount,
		},
		{
			name:    "seat count checked before lab lookup",
			req:     &Request{Identity: student, LabName: "Missing Lab", Date: monday, StartTime: "10:00", EndTime: "12:00", SeatsRequired: ptr.Ptr(-1)},
			wantErr: ErrInvalidSeatCount,
		},
		{
			name:    "more than capacity",
			req:     request(student, "10:00", "12:00", ptr.Ptr(25)),
			wantErr: ErrCapacityExceeded,
		},
		{
			name:    "capacity checked before template",
			req:     request(student, "09:00", "10:00", ptr.Ptr(25)),
			wantErr: ErrCapacityExceeded,
		},
		{
			name:    "unknown lab",
			req:     &Request{Identity: student, LabName: "Missing Lab", Date: monday, StartTime: "10:00", EndTime: "12:00"},
			wantErr: ErrLabNotFound,
		},
		{
			name:    "outside template",
			req:     request(student, "10:00", "11:00", nil),
			wantErr: ErrOutsideTemplate,
		},
		{
			name:    "missing lab name",
			req:     &Request{Identity: student, Date: monday, StartTime: "10:00", EndTime: "12:00"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.All())
		})
	}
}

func TestExecute_AdminBypassesTemplate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(admin, "08:00", "09:30", ptr.Ptr(3)))
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.StartTime.String())
}

func TestExecute_AdminStillLimitedBySeats(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request(admin, "09:00", "11:00", ptr.Ptr(20)))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(student, "10:00", "12:00", nil))
	assert.ErrorIs(t, err, ErrInsufficientSeats, "admin booking overlapping the window occupies its seats")
}

func TestExecute_DisabledLabRejectsNonAdmin(t *testing.T) {
	f := newFixture(t)
	lab, err := f.labs.GetByName(context.Background(), "Electronics Lab")
	require.NoError(t, err)
	date, _ := time.ParseInLocation(domain.DateFormat, monday, time.Local)
	require.NoError(t, f.labs.Disable(context.Background(), &domain.DisabledLab{LabID: lab.ID, Date: date}))

	_, err = f.uc.Execute(context.Background(), request(student, "10:00", "12:00", nil))
	assert.ErrorIs(t, err, ErrLabDisabled)

	_, err = f.uc.Execute(context.Background(), request(admin, "10:00", "12:00", nil))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsNeverOversubscribe(t *testing.T) {
	f := newFixture(t)

	const requests = 35
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", ptr.Ptr(1)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrInsufficientSeats):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, succeeded)
	assert.Equal(t, requests-20, rejected)

	seats := 0
	for _, b := range f.bookings.All() {
		seats += b.SeatsRequired
	}
	assert.Equal(t, 20, seats)
}

type failingLocker struct{ err error }

func (l failingLocker) Lock(context.Context, string) (lock.Unlock, error) { return nil, l.err }

func TestExecute_LockTimeout(t *testing.T) {
	f := newFixture(t)
	f.uc.locker = failingLocker{err: lock.ErrLockTimeout}

	_, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", nil))
	assert.ErrorIs(t, err, ErrBusy)
}

type failingBookings struct{ *usecasetest.BookingStore }

func (failingBookings) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.uc.bookingRepo = failingBookings{f.bookings}

	_, err := f.uc.Execute(context.Background(), request(student, "10:00", "12:00", nil))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AdmissionsTotal.WithLabelValues("create", "internal_error")))
}
