package usecase

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/piresc/estamp/internal/pkg/document"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/pkg/storage"
	"github.com/piresc/estamp/services/forms"
)

const defaultReportTTL = 7 * 24 * time.Hour

// FormUC implements the form use case interface
type FormUC struct {
	formRepo  forms.FormRepo
	generator document.Generator
	store     storage.Store
	reportTTL time.Duration
	clientURL string

	now         func() time.Time
	newReportID func(now time.Time) string
}

// Option configures a FormUC
type Option func(*FormUC)

// WithClock overrides the time source used for report expiry
func WithClock(now func() time.Time) Option {
	return func(uc *FormUC) {
		uc.now = now
	}
}

// WithReportIDs overrides how report identifiers are produced
func WithReportIDs(gen func(now time.Time) string) Option {
	return func(uc *FormUC) {
		uc.newReportID = gen
	}
}

// NewFormUC creates a new form use case
func NewFormUC(
	formRepo forms.FormRepo,
	generator document.Generator,
	store storage.Store,
	cfg models.ReportConfig,
	opts ...Option,
) *FormUC {
	uc := &FormUC{
		formRepo:    formRepo,
		generator:   generator,
		store:       store,
		reportTTL:   cfg.TTL,
		clientURL:   cfg.ClientURL,
		now:         time.Now,
		newReportID: reportID,
	}
	if uc.reportTTL <= 0 {
		uc.reportTTL = defaultReportTTL
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// reportID returns RPT-<unix millis>-<0..999>
func reportID(now time.Time) string {
	return fmt.Sprintf("RPT-%d-%d", now.UnixMilli(), rand.Intn(1000))
}
