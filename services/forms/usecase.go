package forms

import (
	"context"

	"github.com/piresc/estamp/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/estamp/services/forms FormUC

// FormUC defines the form and report operations. Every call is scoped to
// the authenticated owner.
type FormUC interface {
	CreateForm(ctx context.Context, userID string, req *models.FormRequest) (*models.Form, error)
	ListForms(ctx context.Context, userID string) ([]*models.Form, error)
	GetForm(ctx context.Context, userID, id string) (*models.FormDetail, error)
	RegenerateReport(ctx context.Context, userID, id string) (*models.Form, error)
	ReportHistory(ctx context.Context, userID, id string) ([]*models.Report, error)
}
