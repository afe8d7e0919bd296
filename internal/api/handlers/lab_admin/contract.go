package lab_admin

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/labs/models"
)

type LabService interface {
	List(ctx context.Context) (*models.LabListResponse, error)
	Create(ctx context.Context, who domain.Identity, req *models.CreateLabRequest) (*models.LabResponse, error)
	Update(ctx context.Context, who domain.Identity, id int64, req *models.UpdateLabRequest) (*models.LabResponse, error)
	Delete(ctx context.Context, who domain.Identity, id int64) error
	AddWindow(ctx context.Context, who domain.Identity, labID int64, req *models.AddWindowRequest) (*models.WindowResponse, error)
	ListWindows(ctx context.Context, labID int64, day string) ([]*models.WindowResponse, error)
	DeleteWindow(ctx context.Context, who domain.Identity, labID, windowID int64) error
	Disable(ctx context.Context, who domain.Identity, labID int64, req *models.DisableLabRequest) (*models.DisabledLabResponse, error)
	Enable(ctx context.Context, who domain.Identity, labID int64, date string) error
	AssignAssistant(ctx context.Context, who domain.Identity, labID int64, req *models.AssignAssistantRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
