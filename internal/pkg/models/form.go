package models

import (
	"fmt"
	"time"
)

// Applicant types accepted on a stamp form
const (
	ApplicantSelf  = "self"
	ApplicantAgent = "agent"
)

// Form is a stamp-paper application submitted by a user. The embedded
// report fields describe the currently valid report for the form.
type Form struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"userId" db:"user_id"`

	// Applicant type
	ApplicantType string `json:"applicantType" db:"applicant_type"`
	AgentName     string `json:"agentName,omitempty" db:"agent_name"`
	AgentContact  string `json:"agentContact,omitempty" db:"agent_contact"`
	AgentCNIC     string `json:"agentCNIC,omitempty" db:"agent_cnic"`
	AgentEmail    string `json:"agentEmail,omitempty" db:"agent_email"`

	// Applicant information
	ApplicantName    string `json:"applicantName" db:"applicant_name"`
	ApplicantCNIC    string `json:"applicantCNIC" db:"applicant_cnic"`
	Relation         string `json:"relation,omitempty" db:"relation"`
	RelationName     string `json:"relationName,omitempty" db:"relation_name"`
	ApplicantContact string `json:"applicantContact,omitempty" db:"applicant_contact"`
	ApplicantAddress string `json:"applicantAddress,omitempty" db:"applicant_address"`
	ApplicantEmail   string `json:"applicantEmail,omitempty" db:"applicant_email"`

	// Stamp details
	Purpose           string `json:"purpose" db:"purpose"`
	Denomination      string `json:"denomination" db:"denomination"`
	DenominationValue string `json:"denominationValue,omitempty" db:"denomination_value"`
	SerialNumber      string `json:"serialNumber" db:"serial_number"`
	NumStamps         int    `json:"numStamps" db:"num_stamps"`
	Reason            string `json:"reason,omitempty" db:"reason"`

	Date time.Time `json:"date" db:"date"`

	// Report info
	ReportID  string    `json:"reportId" db:"report_id"`
	ReportURL string    `json:"reportUrl" db:"report_url"`
	QRCodeURL string    `json:"qrCodeUrl" db:"qr_code_url"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// FormRequest is the body accepted when creating a form. Date accepts
// either a calendar date or an RFC 3339 timestamp.
type FormRequest struct {
	ApplicantType string `json:"applicantType" validate:"required,oneof=self agent"`
	AgentName     string `json:"agentName"`
	AgentContact  string `json:"agentContact"`
	AgentCNIC     string `json:"agentCNIC"`
	AgentEmail    string `json:"agentEmail" validate:"omitempty,email"`

	ApplicantName    string `json:"applicantName" validate:"required"`
	ApplicantCNIC    string `json:"applicantCNIC" validate:"required"`
	Relation         string `json:"relation"`
	RelationName     string `json:"relationName"`
	ApplicantContact string `json:"applicantContact"`
	ApplicantAddress string `json:"applicantAddress"`
	ApplicantEmail   string `json:"applicantEmail" validate:"omitempty,email"`

	Purpose           string `json:"purpose" validate:"required"`
	Denomination      string `json:"denomination" validate:"required"`
	DenominationValue string `json:"denominationValue"`
	SerialNumber      string `json:"serialNumber" validate:"required"`
	NumStamps         int    `json:"numStamps" validate:"required,min=1"`
	Reason            string `json:"reason"`

	Date string `json:"date" validate:"required"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses the request date in any accepted layout
func (r *FormRequest) ParseDate() (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", r.Date)
}

// ToForm copies the request into a new form owned by userID
func (r *FormRequest) ToForm(userID string, date time.Time) *Form {
	return &Form{
		UserID:            userID,
		ApplicantType:     r.ApplicantType,
		AgentName:         r.AgentName,
		AgentContact:      r.AgentContact,
		AgentCNIC:         r.AgentCNIC,
		AgentEmail:        r.AgentEmail,
		ApplicantName:     r.ApplicantName,
		ApplicantCNIC:     r.ApplicantCNIC,
		Relation:          r.Relation,
		RelationName:      r.RelationName,
		ApplicantContact:  r.ApplicantContact,
		ApplicantAddress:  r.ApplicantAddress,
		ApplicantEmail:    r.ApplicantEmail,
		Purpose:           r.Purpose,
		Denomination:      r.Denomination,
		DenominationValue: r.DenominationValue,
		SerialNumber:      r.SerialNumber,
		NumStamps:         r.NumStamps,
		Reason:            r.Reason,
		Date:              date,
	}
}

// ReportExpired reports whether the form's current report has lapsed at now
func (f *Form) ReportExpired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}

// FormDetail is a form together with its report validity at read time
type FormDetail struct {
	Form    *Form `json:"data"`
	Expired bool  `json:"expired"`
}

// Report records one generation of a form's PDF and QR artifacts
type Report struct {
	ID          string    `json:"id" db:"id"`
	FormID      string    `json:"formId" db:"form_id"`
	ReportID    string    `json:"reportId" db:"report_id"`
	GeneratedAt time.Time `json:"generatedAt" db:"generated_at"`
	PDFURL      string    `json:"pdfUrl" db:"pdf_url"`
	QRCodeURL   string    `json:"qrCodeUrl" db:"qr_code_url"`
}

// ReportArtifacts are the stored outputs of a single report generation
type ReportArtifacts struct {
	ReportID  string
	PDFURL    string
	QRCodeURL string
}
