// Package pdf renders the printable micro-loan application form.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"awaaz/internal/domain"
	"awaaz/internal/port"
	"awaaz/internal/schema"
)

// Placeholder is printed for every field the record leaves empty, so a
// partially filled form still prints with visible blanks.
const Placeholder = "____________"

const (
	marginLeft   = 14.0
	contentWidth = 210.0 - 2*marginLeft
)

// Renderer implements port.DocumentRenderer using an A4 fpdf layout.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ port.DocumentRenderer = (*Renderer)(nil)

func (r *Renderer) Render(record domain.FormRecord) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Micro-Loan Application Form", false)
	doc.SetAuthor("AwaazAgent", false)
	doc.SetMargins(marginLeft, 10, marginLeft)
	doc.AddPage()

	drawHeader(doc)

	y := 46.0
	y = drawSectionHeader(doc, "SECTION A: PERSONAL DETAILS", y)
	y = drawField(doc, "1. Full Name of Applicant", value(record, schema.FieldApplicantName), marginLeft, y, contentWidth, false)
	y = drawField(doc, "2. Father / Spouse Name", value(record, schema.FieldFatherOrSpouseName), marginLeft, y, contentWidth, false)

	halfWidth := (contentWidth - 6) / 2
	drawField(doc, "3. Date of Birth", value(record, schema.FieldDateOfBirth), marginLeft, y, halfWidth, false)
	y = drawField(doc, "4. Gender", value(record, schema.FieldGender), marginLeft+halfWidth+6, y, halfWidth, false)

	y = drawSectionHeader(doc, "SECTION B: FINANCIAL DETAILS", y+2)
	y = drawField(doc, "5. Annual Income (Rs.)", value(record, schema.FieldAnnualIncome), marginLeft, y, contentWidth, false)
	y = drawField(doc, "6. Loan Amount Requested (Rs.)", value(record, schema.FieldLoanAmount), marginLeft, y, contentWidth, false)
	y = drawField(doc, "7. Purpose of Loan", value(record, schema.FieldLoanPurpose), marginLeft, y, contentWidth, false)

	y = drawSectionHeader(doc, "SECTION C: ADDRESS & IDENTIFICATION", y+2)
	y = drawField(doc, "8. Residential Address", value(record, schema.FieldAddress), marginLeft, y, contentWidth, true)
	y = drawField(doc, "9. ID Proof Number (Aadhaar / Voter ID)", value(record, schema.FieldIDNumber), marginLeft, y, contentWidth, false)
	y = drawField(doc, "10. Contact Phone Number", value(record, schema.FieldPhoneNumber), marginLeft, y, contentWidth, false)

	y = drawSectionHeader(doc, "DECLARATION", y+4)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(51, 51, 51)
	doc.SetXY(marginLeft+3, y)
	doc.MultiCell(contentWidth-6, 4,
		"I hereby declare that all the information provided above is true and correct to the best of my knowledge. "+
			"I understand that any false information may lead to rejection of my application. "+
			"I authorize the institution to verify the details provided.",
		"", "L", false)
	y = doc.GetY() + 14

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	doc.Text(marginLeft+3, y, "Date: _______________")
	doc.Text(marginLeft+contentWidth/2, y, "Signature / Thumb Impression: _______________")
	y += 12

	drawOfficeBox(doc, y)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func value(record domain.FormRecord, fieldID string) string {
	if record.Filled(fieldID) {
		return record[fieldID]
	}
	return Placeholder
}

func drawHeader(doc *fpdf.Fpdf) {
	doc.SetFillColor(232, 234, 246)
	doc.SetDrawColor(26, 35, 126)
	doc.SetLineWidth(0.6)
	doc.Rect(marginLeft, 10, contentWidth, 28, "FD")

	doc.SetTextColor(26, 35, 126)
	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(marginLeft, 14)
	doc.CellFormat(contentWidth, 8, "MICRO-LOAN APPLICATION FORM", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetX(marginLeft)
	doc.CellFormat(contentWidth, 6, "National Micro-Finance Development Corporation", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(66, 66, 66)
	doc.SetX(marginLeft)
	doc.CellFormat(contentWidth, 5, "Form No: NMFDC/ML/2026-27", "", 1, "C", false, 0, "")
}

func drawSectionHeader(doc *fpdf.Fpdf, text string, y float64) float64 {
	doc.SetFillColor(26, 35, 126)
	doc.Rect(marginLeft, y, contentWidth, 8, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(marginLeft+3, y+5.5, text)
	return y + 10
}

func drawField(doc *fpdf.Fpdf, label, val string, x, y, width float64, multiline bool) float64 {
	height := 11.0
	if multiline {
		height = 17.0
	}

	doc.SetDrawColor(189, 189, 189)
	doc.SetLineWidth(0.2)
	doc.Rect(x, y, width, height, "D")

	doc.SetFont("Helvetica", "B", 7)
	doc.SetTextColor(97, 97, 97)
	doc.Text(x+2.5, y+3.5, label)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	if multiline {
		doc.SetXY(x+2.5, y+5)
		doc.MultiCell(width-5, 4.5, val, "", "L", false)
	} else {
		doc.Text(x+2.5, y+8.5, val)
	}

	return y + height + 1.5
}

func drawOfficeBox(doc *fpdf.Fpdf, y float64) {
	doc.SetDrawColor(158, 158, 158)
	doc.SetLineWidth(0.3)
	doc.Rect(marginLeft, y, contentWidth, 22, "D")

	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(102, 102, 102)
	doc.Text(marginLeft+3, y+6, "FOR OFFICE USE ONLY")

	doc.SetFont("Helvetica", "", 7)
	doc.Text(marginLeft+3, y+12, "Application No: _________________    Received by: _________________    Date: _________________")
	doc.Text(marginLeft+3, y+17, "Verification Status:  [ ] Approved   [ ] Rejected   [ ] Pending Review")
}
