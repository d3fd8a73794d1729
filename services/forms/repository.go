package forms

import (
	"context"

	"github.com/piresc/estamp/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/estamp/services/forms FormRepo

// FormRepo stores forms and their report generation history.
// GetByID returns (nil, nil) when the form does not exist.
type FormRepo interface {
	Create(ctx context.Context, form *models.Form, report *models.Report) error
	ListByUser(ctx context.Context, userID string) ([]*models.Form, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
	UpdateReport(ctx context.Context, form *models.Form, report *models.Report) error
	ListReports(ctx context.Context, formID string) ([]*models.Report, error)
}
