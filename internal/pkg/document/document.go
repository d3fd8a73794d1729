package document

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/skip2/go-qrcode"
)

//go:generate mockgen -destination=mocks/mock_document.go -package=mocks github.com/piresc/estamp/internal/pkg/document Generator

const (
	defaultQRSize = 256
	qrImageName   = "report-qr"
	qrSideMM      = 53.0 // about 150pt
)

// Generator renders report artifacts
type Generator interface {
	QRCode(payload string) ([]byte, error)
	ReportPDF(form *models.Form, reportID string, qrPNG []byte) ([]byte, error)
}

// Renderer renders QR codes with go-qrcode and reports with fpdf
type Renderer struct {
	qrSize int
}

func NewRenderer() *Renderer {
	return &Renderer{qrSize: defaultQRSize}
}

// QRCode encodes payload as a PNG
func (r *Renderer) QRCode(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty QR payload")
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, r.qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// ReportPDF lays out the applicant summary on the first page and the QR
// code centred on the second
func (r *Renderer) ReportPDF(form *models.Form, reportID string, qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Stamp Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range summaryLines(form, reportID) {
		pdf.CellFormat(0, 8, tr(line[0]+": "+line[1]), "", 1, "L", false, 0, "")
	}

	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(qrPNG))
	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions(qrImageName, (pageW-qrSideMM)/2, (pageH-qrSideMM)/2, qrSideMM, qrSideMM, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryLines(form *models.Form, reportID string) [][2]string {
	lines := [][2]string{
		{"Report ID", reportID},
		{"Applicant Name", form.ApplicantName},
		{"Applicant CNIC", form.ApplicantCNIC},
	}
	if form.ApplicantType == models.ApplicantAgent && form.AgentName != "" {
		lines = append(lines, [2]string{"Agent Name", form.AgentName})
	}
	lines = append(lines,
		[2]string{"Purpose", form.Purpose},
		[2]string{"Denomination", form.Denomination},
		[2]string{"Serial Number", form.SerialNumber},
		[2]string{"No of Stamps", strconv.Itoa(form.NumStamps)},
		[2]string{"Date", form.Date.Format("02/01/2006")},
	)
	return lines
}
