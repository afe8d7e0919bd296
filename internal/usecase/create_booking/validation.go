package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Identity.UserID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if !req.Identity.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrAccessDenied, req.Identity.Role)
	}

	if strings.TrimSpace(req.LabName) == "" {
		return fmt.Errorf("%w: lab name is required", ErrInvalidInput)
	}

	if len(req.LabName) > domain.MaxLabNameLength {
		return fmt.Errorf("%w: lab name is too long", ErrInvalidInput)
	}

	return nil
}
