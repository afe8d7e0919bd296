package get_lab_occupancy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/types"
)

// resolveView выбирает представление по роли вызывающего
func resolveView(req *Request) (View, error) {
	if !req.Identity.Role.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrAccessDenied, req.Identity.Role)
	}

	if req.AssignedOnly {
		if req.Identity.Role != domain.RoleLabAssistant {
			return "", fmt.Errorf("%w: only lab assistants have assigned labs", ErrAccessDenied)
		}
		return ViewAssistant, nil
	}

	switch req.Identity.Role {
	case domain.RoleAdmin:
		return ViewAdmin, nil
	case domain.RoleLabAssistant:
		return ViewAssistant, nil
	default:
		return ViewPublic, nil
	}
}

// resolveDate разбирает дату запроса; прошедшие даты отклоняются для всех ролей
func resolveDate(req *Request, now time.Time) (time.Time, error) {
	if req.Date == "" {
		if req.AssignedOnly {
			return types.DateOnly(now), nil
		}
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	if types.IsDateInPast(date, now) {
		return time.Time{}, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, req.Date)
	}
	return date, nil
}
