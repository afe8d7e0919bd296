package labs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/labs/models"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

var (
	admin   = domain.Identity{UserID: "ADM001", Role: domain.RoleAdmin}
	student = domain.Identity{UserID: "STU001", Role: domain.RoleStudent}
)

func newService(t *testing.T) (*Service, *usecasetest.LabStore) {
	t.Helper()
	store := usecasetest.NewLabStore()
	svc := NewService(store, 50, logger.NewNop()).
		WithTimeProvider(usecasetest.NewClock(2030, time.May, 1))
	return svc, store
}

func TestCreate(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.Create(context.Background(), admin, &models.CreateLabRequest{Name: " Physics ", Capacity: 30})
	require.NoError(t, err)
	assert.Equal(t, "Physics", resp.Name)
	assert.Equal(t, []string{}, resp.Equipment)

	_, err = svc.Create(context.Background(), admin, &models.CreateLabRequest{Name: "Physics", Capacity: 10})
	assert.ErrorIs(t, err, ErrLabAlreadyExists)

	_, err = svc.Create(context.Background(), student, &models.CreateLabRequest{Name: "Optics", Capacity: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_CapacityBounds(t *testing.T) {
	svc, _ := newService(t)

	for _, capacity := range []int{0, -1, 51} {
		_, err := svc.Create(context.Background(), admin, &models.CreateLabRequest{Name: "Lab", Capacity: capacity})
		assert.ErrorIs(t, err, ErrInvalidInput, capacity)
	}

	_, err := svc.Create(context.Background(), admin, &models.CreateLabRequest{Name: "Lab", Capacity: 50})
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), admin, &models.CreateLabRequest{Name: "   ", Capacity: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday)

	resp, err := svc.Update(context.Background(), admin, lab.ID, &models.UpdateLabRequest{
		Capacity:  ptr.Ptr(20),
		Equipment: &[]string{"Oscilloscope"},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Capacity)
	assert.Equal(t, []string{"Oscilloscope"}, resp.Equipment)
	assert.NotNil(t, resp.UpdatedAt)

	_, err = svc.Update(context.Background(), admin, lab.ID, &models.UpdateLabRequest{Capacity: ptr.Ptr(500)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), admin, 999, &models.UpdateLabRequest{})
	assert.ErrorIs(t, err, ErrLabNotFound)
}

func TestDelete_CascadesWindows(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday, "09:00-11:00")

	require.NoError(t, svc.Delete(context.Background(), admin, lab.ID))

	windows, err := store.GetWindows(context.Background(), lab.ID, domain.Monday)
	require.NoError(t, err)
	assert.Empty(t, windows)

	assert.ErrorIs(t, svc.Delete(context.Background(), admin, lab.ID), ErrLabNotFound)
}

func TestAddWindow(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday)

	resp, err := svc.AddWindow(context.Background(), admin, lab.ID, &models.AddWindowRequest{
		DayOfWeek: "Tuesday", StartTime: "09:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", resp.DayOfWeek)

	// дубликаты допустимы
	_, err = svc.AddWindow(context.Background(), admin, lab.ID, &models.AddWindowRequest{
		DayOfWeek: "Tuesday", StartTime: "09:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	windows, err := svc.ListWindows(context.Background(), lab.ID, "Tuesday")
	require.NoError(t, err)
	assert.Len(t, windows, 2)

	tests := []struct {
		name string
		req  models.AddWindowRequest
	}{
		{name: "bad day", req: models.AddWindowRequest{DayOfWeek: "monday", StartTime: "09:00", EndTime: "11:00"}},
		{name: "equal bounds", req: models.AddWindowRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "09:00"}},
		{name: "reversed", req: models.AddWindowRequest{DayOfWeek: "Monday", StartTime: "12:00", EndTime: "09:00"}},
		{name: "bad time", req: models.AddWindowRequest{DayOfWeek: "Monday", StartTime: "25:00", EndTime: "26:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.AddWindow(context.Background(), admin, lab.ID, &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err = svc.AddWindow(context.Background(), admin, 999, &models.AddWindowRequest{
		DayOfWeek: "Monday", StartTime: "09:00", EndTime: "11:00",
	})
	assert.ErrorIs(t, err, ErrLabNotFound)
}

func TestDeleteWindow(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday, "09:00-11:00")
	windows, err := store.GetWindows(context.Background(), lab.ID, domain.Monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)

	require.NoError(t, svc.DeleteWindow(context.Background(), admin, lab.ID, windows[0].ID))
	assert.ErrorIs(t, svc.DeleteWindow(context.Background(), admin, lab.ID, windows[0].ID), ErrWindowNotFound)
}

func TestDisableAndEnable(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday)

	_, err := svc.Disable(context.Background(), admin, lab.ID, &models.DisableLabRequest{Date: "2030-05-06"})
	require.NoError(t, err)

	// повторное отключение обновляет причину
	resp, err := svc.Disable(context.Background(), admin, lab.ID, &models.DisableLabRequest{
		Date: "2030-05-06", Reason: ptr.Ptr("Maintenance"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2030-05-06", resp.Date)

	date := time.Date(2030, time.May, 6, 0, 0, 0, 0, time.Local)
	disabled, err := store.GetDisabled(context.Background(), lab.ID, date)
	require.NoError(t, err)
	require.NotNil(t, disabled.Reason)
	assert.Equal(t, "Maintenance", *disabled.Reason)

	require.NoError(t, svc.Enable(context.Background(), admin, lab.ID, "2030-05-06"))
	assert.ErrorIs(t, svc.Enable(context.Background(), admin, lab.ID, "2030-05-06"), ErrNotDisabled)
}

func TestDisable_Validation(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday)

	_, err := svc.Disable(context.Background(), admin, lab.ID, &models.DisableLabRequest{Date: "2030-04-30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Disable(context.Background(), admin, lab.ID, &models.DisableLabRequest{Date: "06/05/2030"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Disable(context.Background(), student, lab.ID, &models.DisableLabRequest{Date: "2030-05-06"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Disable(context.Background(), admin, 999, &models.DisableLabRequest{Date: "2030-05-06"})
	assert.ErrorIs(t, err, ErrLabNotFound)
}

func TestAssignAssistant(t *testing.T) {
	svc, store := newService(t)
	lab := store.AddLab("Physics", 10, domain.Monday)

	req := &models.AssignAssistantRequest{AssistantID: "LA001"}
	require.NoError(t, svc.AssignAssistant(context.Background(), admin, lab.ID, req))
	assert.ErrorIs(t, svc.AssignAssistant(context.Background(), admin, lab.ID, req), ErrAlreadyAssigned)

	assigned, err := store.IsAssigned(context.Background(), lab.ID, "LA001")
	require.NoError(t, err)
	assert.True(t, assigned)

	assert.ErrorIs(t, svc.AssignAssistant(context.Background(), admin, 999, req), ErrLabNotFound)
	assert.ErrorIs(t, svc.AssignAssistant(context.Background(), student, lab.ID, req), ErrAccessDenied)
}
