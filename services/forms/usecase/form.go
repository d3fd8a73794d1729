package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/models"
	nrpkg "github.com/piresc/estamp/internal/pkg/newrelic"
)

const (
	msgFormNotFound  = "Form not found"
	msgNotOwner      = "Unauthorized"
	msgNotExpiredYet = "Report not expired yet"
)

// CreateForm stores a new form together with its first report
func (uc *FormUC) CreateForm(ctx context.Context, userID string, req *models.FormRequest) (*models.Form, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	date, err := req.ParseDate()
	if err != nil {
		return nil, apperror.Validation("Invalid date")
	}

	form := req.ToForm(userID, date)
	report, err := uc.generate(ctx, form)
	if err != nil {
		return nil, err
	}

	if err := uc.formRepo.Create(ctx, form, report); err != nil {
		return nil, apperror.Internal("Failed to create form", err)
	}

	logger.InfoCtx(ctx, "Form created",
		logger.String("form_id", form.ID),
		logger.String("report_id", form.ReportID))
	return form, nil
}

// ListForms returns the caller's forms, newest first
func (uc *FormUC) ListForms(ctx context.Context, userID string) ([]*models.Form, error) {
	forms, err := uc.formRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Failed to list forms", err)
	}
	return forms, nil
}

// GetForm returns an owned form and whether its report has lapsed
func (uc *FormUC) GetForm(ctx context.Context, userID, id string) (*models.FormDetail, error) {
	form, err := uc.ownedForm(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &models.FormDetail{
		Form:    form,
		Expired: form.ReportExpired(uc.now()),
	}, nil
}

// RegenerateReport issues a fresh report for an owned form whose current
// report has lapsed
func (uc *FormUC) RegenerateReport(ctx context.Context, userID, id string) (*models.Form, error) {
	form, err := uc.ownedForm(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if uc.now().Before(form.ExpiresAt) {
		return nil, apperror.Validation(msgNotExpiredYet)
	}

	report, err := uc.generate(ctx, form)
	if err != nil {
		return nil, err
	}
	if err := uc.formRepo.UpdateReport(ctx, form, report); err != nil {
		return nil, apperror.Internal("Failed to update form report", err)
	}

	logger.InfoCtx(ctx, "Report regenerated",
		logger.String("form_id", form.ID),
		logger.String("report_id", form.ReportID))
	return form, nil
}

// ReportHistory lists every report generated for an owned form
func (uc *FormUC) ReportHistory(ctx context.Context, userID, id string) ([]*models.Report, error) {
	form, err := uc.ownedForm(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	reports, err := uc.formRepo.ListReports(ctx, form.ID)
	if err != nil {
		return nil, apperror.Internal("Failed to list reports", err)
	}
	return reports, nil
}

func (uc *FormUC) ownedForm(ctx context.Context, userID, id string) (*models.Form, error) {
	form, err := uc.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to get form", err)
	}
	if form == nil {
		return nil, apperror.NotFound(msgFormNotFound)
	}
	if form.UserID != userID {
		return nil, apperror.Forbidden(msgNotOwner)
	}
	return form, nil
}

// generate renders and stores a new report for form and points the form
// at it. The returned history row is not yet persisted.
func (uc *FormUC) generate(ctx context.Context, form *models.Form) (*models.Report, error) {
	if segment := nrpkg.StartSegment(ctx, "forms.report.generate"); segment != nil {
		defer segment.End()
	}

	now := uc.now()
	id := uc.newReportID(now)

	qr, err := uc.generator.QRCode(uc.qrPayload(id))
	if err != nil {
		return nil, apperror.Internal("Failed to generate QR code", err)
	}
	pdf, err := uc.generator.ReportPDF(form, id, qr)
	if err != nil {
		return nil, apperror.Internal("Failed to generate report", err)
	}

	var artifacts models.ReportArtifacts
	artifacts.ReportID = id
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := uc.store.Put(gctx, fmt.Sprintf("qrcodes/qr-%s.png", id), "image/png", qr)
		artifacts.QRCodeURL = url
		return err
	})
	g.Go(func() error {
		url, err := uc.store.Put(gctx, fmt.Sprintf("reports/report-%s.pdf", id), "application/pdf", pdf)
		artifacts.PDFURL = url
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal("Failed to store report", err)
	}

	form.ReportID = artifacts.ReportID
	form.ReportURL = artifacts.PDFURL
	form.QRCodeURL = artifacts.QRCodeURL
	form.ExpiresAt = now.Add(uc.reportTTL)

	return &models.Report{
		ReportID:    artifacts.ReportID,
		GeneratedAt: now,
		PDFURL:      artifacts.PDFURL,
		QRCodeURL:   artifacts.QRCodeURL,
	}, nil
}

// qrPayload links to the client's verification page when one is
// configured, otherwise it carries the bare report id
func (uc *FormUC) qrPayload(reportID string) string {
	if uc.clientURL == "" {
		return "Report ID: " + reportID
	}
	return strings.TrimRight(uc.clientURL, "/") + "/report/" + reportID
}

func checkRequest(req *models.FormRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"applicantType", req.ApplicantType},
		{"applicantName", req.ApplicantName},
		{"applicantCNIC", req.ApplicantCNIC},
		{"purpose", req.Purpose},
		{"denomination", req.Denomination},
		{"serialNumber", req.SerialNumber},
		{"date", req.Date},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return apperror.Validation(field.name + " is required")
		}
	}
	if req.ApplicantType != models.ApplicantSelf && req.ApplicantType != models.ApplicantAgent {
		return apperror.Validation("applicantType must be one of: self agent")
	}
	if req.NumStamps < 1 {
		return apperror.Validation("numStamps must be at least 1")
	}
	return nil
}
