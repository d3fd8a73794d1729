package document

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForm() *models.Form {
	return &models.Form{
		ApplicantType: models.ApplicantAgent,
		AgentName:     "Bilal",
		ApplicantName: "Ayesha Khan",
		ApplicantCNIC: "35202-1234567-1",
		Purpose:       "Sale deed",
		Denomination:  "1000",
		SerialNumber:  "SN-001",
		NumStamps:     2,
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderer_QRCode(t *testing.T) {
	r := NewRenderer()

	data, err := r.QRCode("https://estamp.example.com/report/RPT-1")

	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, defaultQRSize, img.Bounds().Dx())
}

func TestRenderer_QRCodeEmptyPayload(t *testing.T) {
	_, err := NewRenderer().QRCode("")
	assert.Error(t, err)
}

func TestRenderer_ReportPDF(t *testing.T) {
	// Arrange
	r := NewRenderer()
	qr, err := r.QRCode("Report ID: RPT-1")
	require.NoError(t, err)

	// Act
	pdf, err := r.ReportPDF(testForm(), "RPT-1", qr)

	// Assert
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, string(pdf), "/Count 2")
}

func TestRenderer_ReportPDFInvalidImage(t *testing.T) {
	_, err := NewRenderer().ReportPDF(testForm(), "RPT-1", []byte("not a png"))
	assert.Error(t, err)
}

func TestSummaryLines(t *testing.T) {
	lines := summaryLines(testForm(), "RPT-9")

	assert.Equal(t, [2]string{"Report ID", "RPT-9"}, lines[0])
	assert.Contains(t, lines, [2]string{"Agent Name", "Bilal"})
	assert.Contains(t, lines, [2]string{"No of Stamps", "2"})
	assert.Contains(t, lines, [2]string{"Date", "01/03/2025"})

	self := testForm()
	self.ApplicantType = models.ApplicantSelf
	assert.NotContains(t, summaryLines(self, "RPT-9"), [2]string{"Agent Name", "Bilal"})
}
