package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/estamp/internal/pkg/models"
)

const (
	testUserID = "550e8400-e29b-41d4-a716-446655440000"
	testFormID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func setupFormRepoTest(t *testing.T) (*FormRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "pgx")
	repo := NewFormRepo(sqlxDB)
	repo.now = func() time.Time { return fixedNow }

	cleanup := func() {
		sqlxDB.Close()
	}
	return repo, mock, cleanup
}

var formColumnNames = []string{
	"id", "user_id", "applicant_type", "agent_name", "agent_contact", "agent_cnic", "agent_email",
	"applicant_name", "applicant_cnic", "relation", "relation_name", "applicant_contact", "applicant_address", "applicant_email",
	"purpose", "denomination", "denomination_value", "serial_number", "num_stamps", "reason", "date",
	"report_id", "report_url", "qr_code_url", "expires_at", "created_at", "updated_at",
}

func addFormRow(rows *sqlmock.Rows, id, reportID string, createdAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, testUserID, "self", "", "", "", "",
		"Ayesha Khan", "35202-1234567-1", "", "", "", "", "",
		"Sale deed", "1000", "", "SN-001", 2, "", fixedNow,
		reportID, "/uploads/reports/report-"+reportID+".pdf", "/uploads/qrcodes/qr-"+reportID+".png",
		createdAt.Add(7*24*time.Hour), createdAt, createdAt,
	)
}

func newForm() *models.Form {
	return &models.Form{
		UserID:        testUserID,
		ApplicantType: models.ApplicantSelf,
		ApplicantName: "Ayesha Khan",
		ApplicantCNIC: "35202-1234567-1",
		Purpose:       "Sale deed",
		Denomination:  "1000",
		SerialNumber:  "SN-001",
		NumStamps:     2,
		Date:          fixedNow,
		ReportID:      "RPT-1",
		ReportURL:     "/uploads/reports/report-RPT-1.pdf",
		QRCodeURL:     "/uploads/qrcodes/qr-RPT-1.png",
		ExpiresAt:     fixedNow.Add(7 * 24 * time.Hour),
	}
}

func newReport() *models.Report {
	return &models.Report{
		ReportID:    "RPT-1",
		GeneratedAt: fixedNow,
		PDFURL:      "/uploads/reports/report-RPT-1.pdf",
		QRCodeURL:   "/uploads/qrcodes/qr-RPT-1.png",
	}
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		expectErr bool
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO forms`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO reports`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Form insert fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO forms`).WillReturnError(errors.New("duplicate report_id"))
				mock.ExpectRollback()
			},
			expectErr: true,
		},
		{
			name: "Report insert fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO forms`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO reports`).WillReturnError(errors.New("db error"))
				mock.ExpectRollback()
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			repo, mock, cleanup := setupFormRepoTest(t)
			defer cleanup()
			tc.mockSetup(mock)
			form, report := newForm(), newReport()

			// Act
			err := repo.Create(context.Background(), form, report)

			// Assert
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, form.ID)
				assert.Equal(t, fixedNow, form.CreatedAt)
				assert.Equal(t, form.ID, report.FormID)
				assert.NotEmpty(t, report.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, cleanup := setupFormRepoTest(t)
	defer cleanup()

	rows := sqlmock.NewRows(formColumnNames)
	addFormRow(rows, testFormID, "RPT-2", fixedNow)
	addFormRow(rows, "7ba7b810-9dad-11d1-80b4-00c04fd430c8", "RPT-1", fixedNow.Add(-time.Hour))
	mock.ExpectQuery(`SELECT (.+) FROM forms WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(testUserID).
		WillReturnRows(rows)

	forms, err := repo.ListByUser(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "RPT-2", forms[0].ReportID)
	assert.Equal(t, 2, forms[0].NumStamps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, cleanup := setupFormRepoTest(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM forms`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(formColumnNames))

	forms, err := repo.ListByUser(context.Background(), testUserID)

	require.NoError(t, err)
	assert.NotNil(t, forms)
	assert.Empty(t, forms)
}

func TestGetByID(t *testing.T) {
	testCases := []struct {
		name       string
		id         string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, form *models.Form, err error)
	}{
		{
			name: "Found",
			id:   testFormID,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM forms WHERE id = \$1`).
					WithArgs(testFormID).
					WillReturnRows(addFormRow(sqlmock.NewRows(formColumnNames), testFormID, "RPT-1", fixedNow))
			},
			assertFunc: func(t *testing.T, form *models.Form, err error) {
				require.NoError(t, err)
				require.NotNil(t, form)
				assert.Equal(t, testUserID, form.UserID)
				assert.Equal(t, fixedNow.Add(7*24*time.Hour), form.ExpiresAt)
			},
		},
		{
			name: "Not found",
			id:   testFormID,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM forms WHERE id = \$1`).
					WithArgs(testFormID).
					WillReturnRows(sqlmock.NewRows(formColumnNames))
			},
			assertFunc: func(t *testing.T, form *models.Form, err error) {
				assert.NoError(t, err)
				assert.Nil(t, form)
			},
		},
		{
			name:      "Malformed id",
			id:        "not-a-uuid",
			mockSetup: func(mock sqlmock.Sqlmock) {},
			assertFunc: func(t *testing.T, form *models.Form, err error) {
				assert.NoError(t, err)
				assert.Nil(t, form)
			},
		},
		{
			name: "Database error",
			id:   testFormID,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM forms`).WillReturnError(errors.New("connection reset"))
			},
			assertFunc: func(t *testing.T, form *models.Form, err error) {
				assert.Error(t, err)
				assert.Nil(t, form)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupFormRepoTest(t)
			defer cleanup()
			tc.mockSetup(mock)

			form, err := repo.GetByID(context.Background(), tc.id)

			tc.assertFunc(t, form, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateReport(t *testing.T) {
	testCases := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		expectErr bool
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE forms\s+SET report_id = \$1`).
					WithArgs("RPT-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), fixedNow, testFormID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO reports`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Form vanished",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE forms`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			expectErr: true,
		},
		{
			name: "History insert fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE forms`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO reports`).WillReturnError(errors.New("db error"))
				mock.ExpectRollback()
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupFormRepoTest(t)
			defer cleanup()
			tc.mockSetup(mock)
			form, report := newForm(), newReport()
			form.ID = testFormID

			err := repo.UpdateReport(context.Background(), form, report)

			if tc.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testFormID, report.FormID)
				assert.Equal(t, fixedNow, form.UpdatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListReports(t *testing.T) {
	repo, mock, cleanup := setupFormRepoTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "form_id", "report_id", "generated_at", "pdf_url", "qr_code_url"}).
		AddRow("r2", testFormID, "RPT-2", fixedNow, "/uploads/reports/report-RPT-2.pdf", "/uploads/qrcodes/qr-RPT-2.png").
		AddRow("r1", testFormID, "RPT-1", fixedNow.Add(-8*24*time.Hour), "/uploads/reports/report-RPT-1.pdf", "/uploads/qrcodes/qr-RPT-1.png")
	mock.ExpectQuery(`SELECT (.+) FROM reports WHERE form_id = \$1 ORDER BY generated_at DESC`).
		WithArgs(testFormID).
		WillReturnRows(rows)

	reports, err := repo.ListReports(context.Background(), testFormID)

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "RPT-2", reports[0].ReportID)
	assert.Equal(t, "RPT-1", reports[1].ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
