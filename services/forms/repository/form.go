package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/piresc/estamp/internal/pkg/models"
)

const formColumns = `id, user_id, applicant_type, agent_name, agent_contact, agent_cnic, agent_email,
	applicant_name, applicant_cnic, relation, relation_name, applicant_contact, applicant_address, applicant_email,
	purpose, denomination, denomination_value, serial_number, num_stamps, reason, date,
	report_id, report_url, qr_code_url, expires_at, created_at, updated_at`

const reportColumns = `id, form_id, report_id, generated_at, pdf_url, qr_code_url`

// FormRepo implements the form repository on postgres
type FormRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewFormRepo creates a new form repository
func NewFormRepo(db *sqlx.DB) *FormRepo {
	return &FormRepo{db: db, now: time.Now}
}

// Create inserts the form and its first report row in one transaction
func (r *FormRepo) Create(ctx context.Context, form *models.Form, report *models.Report) error {
	now := r.now()
	form.ID = uuid.NewString()
	form.CreatedAt = now
	form.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO forms (` + formColumns + `) VALUES (
			:id, :user_id, :applicant_type, :agent_name, :agent_contact, :agent_cnic, :agent_email,
			:applicant_name, :applicant_cnic, :relation, :relation_name, :applicant_contact, :applicant_address, :applicant_email,
			:purpose, :denomination, :denomination_value, :serial_number, :num_stamps, :reason, :date,
			:report_id, :report_url, :qr_code_url, :expires_at, :created_at, :updated_at
		)`
	if _, err := tx.NamedExecContext(ctx, query, form); err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}

	if err := insertReport(ctx, tx, form.ID, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListByUser returns the user's forms, newest first
func (r *FormRepo) ListByUser(ctx context.Context, userID string) ([]*models.Form, error) {
	forms := []*models.Form{}
	if _, err := uuid.Parse(userID); err != nil {
		return forms, nil
	}

	query := `SELECT ` + formColumns + ` FROM forms WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &forms, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, nil
}

// GetByID retrieves a form by ID
func (r *FormRepo) GetByID(ctx context.Context, id string) (*models.Form, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var form models.Form
	query := `SELECT ` + formColumns + ` FROM forms WHERE id = $1`
	if err := r.db.GetContext(ctx, &form, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return &form, nil
}

// UpdateReport replaces the form's current report and appends it to the
// history in one transaction
func (r *FormRepo) UpdateReport(ctx context.Context, form *models.Form, report *models.Report) error {
	form.UpdatedAt = r.now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE forms
		SET report_id = $1, report_url = $2, qr_code_url = $3, expires_at = $4, updated_at = $5
		WHERE id = $6`
	result, err := tx.ExecContext(ctx, query,
		form.ReportID, form.ReportURL, form.QRCodeURL, form.ExpiresAt, form.UpdatedAt, form.ID)
	if err != nil {
		return fmt.Errorf("failed to update form report: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("form %s not found", form.ID)
	}

	if err := insertReport(ctx, tx, form.ID, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListReports returns the report generations of a form, newest first
func (r *FormRepo) ListReports(ctx context.Context, formID string) ([]*models.Report, error) {
	reports := []*models.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE form_id = $1 ORDER BY generated_at DESC`
	if err := r.db.SelectContext(ctx, &reports, query, formID); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func insertReport(ctx context.Context, tx *sqlx.Tx, formID string, report *models.Report) error {
	report.ID = uuid.NewString()
	report.FormID = formID

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES (:id, :form_id, :report_id, :generated_at, :pdf_url, :qr_code_url)`
	if _, err := tx.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}
	return nil
}
