package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData holds the fields printed on a completion certificate.
type CertificateData struct {
	Serial      string
	StudentName string
	CollegeName string
	CourseTitle string
	IssuerName  string
	IssuedAt    time.Time
}

// CertificateRenderer produces landscape completion-certificate PDFs.
type CertificateRenderer struct{}

// NewCertificateRenderer constructs a certificate renderer.
func NewCertificateRenderer() *CertificateRenderer {
	return &CertificateRenderer{}
}

// Render lays out a single certificate page.
func (r *CertificateRenderer) Render(data CertificateData) ([]byte, error) {
	if data.StudentName == "" || data.CourseTitle == "" {
		return nil, fmt.Errorf("certificate requires student name and course title")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, pageW-20, 190, "D")

	pdf.SetFont("Arial", "B", 28)
	pdf.CellFormat(0, 18, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, data.StudentName, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 13)
	body := fmt.Sprintf("of %s has successfully completed the course", data.CollegeName)
	if data.CollegeName == "" {
		body = "has successfully completed the course"
	}
	pdf.CellFormat(0, 8, body, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, data.CourseTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	issued := data.IssuedAt
	if issued.IsZero() {
		issued = time.Now().UTC()
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("Issued on %s by %s", issued.Format("02 January 2006"), data.IssuerName), "", 1, "C", false, 0, "")

	if data.Serial != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Serial: %s", data.Serial), "", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
